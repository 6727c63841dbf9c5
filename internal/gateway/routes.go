package gateway

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/celebnet/backend/internal/gateway/middleware"
	ai_http "github.com/celebnet/backend/internal/modules/ai/interfaces/http"
	auth_http "github.com/celebnet/backend/internal/modules/auth/interfaces/http"
	celebrity_http "github.com/celebnet/backend/internal/modules/celebrity/interfaces/http"
	follow_http "github.com/celebnet/backend/internal/modules/follow/interfaces/http"
	pdf_http "github.com/celebnet/backend/internal/modules/pdf/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler      *auth_http.AuthHandler
	CelebrityHandler *celebrity_http.CelebrityHandler
	FollowHandler    *follow_http.FollowHandler
	AIHandler        *ai_http.AIHandler
	PDFHandler       *pdf_http.PDFHandler
	AuthMiddleware   *middleware.AuthMiddleware
	MetricsHandler   http.Handler

	// Optional per-surface limiters. Nil disables.
	AILimiter  Middleware
	PDFLimiter Middleware

	// CelebrityMutationsRequireAuth guards PUT and DELETE on /celebrities/{id}.
	CelebrityMutationsRequireAuth bool

	// UploadsDir is served under UploadsURLPrefix when images are stored locally.
	UploadsDir       string
	UploadsURLPrefix string
}

// SetupRoutes registers all application routes on router
func SetupRoutes(router *Router, config RouterConfig) {
	protect := Middleware(config.AuthMiddleware.RequireAuth)

	// Health Check
	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	router.Handle("GET /metrics", config.MetricsHandler)

	// Auth Routes
	router.HandleFunc("POST /auth/signup", config.AuthHandler.SignUp)
	router.HandleFunc("POST /auth/signin", config.AuthHandler.SignIn)

	// Celebrity Routes
	celeb := config.CelebrityHandler
	mutate := Middleware(nil)
	if config.CelebrityMutationsRequireAuth {
		mutate = protect
	}
	router.HandleFunc("GET /celebrities", celeb.List)
	router.HandleFunc("GET /celebrities/{id}", celeb.Get)
	router.HandleFunc("GET /celebrities/by-name/{name}", celeb.GetByName)
	router.Handle("POST /celebrities", chain(http.HandlerFunc(celeb.Create), protect))
	router.Handle("PUT /celebrities/{id}", chain(http.HandlerFunc(celeb.Update), mutate))
	router.Handle("DELETE /celebrities/{id}", chain(http.HandlerFunc(celeb.Delete), mutate))
	router.Handle("POST /celebrities/{id}/image", chain(http.HandlerFunc(celeb.UploadImage), protect))

	// PDF Export. A literal "{id}/pdf" pattern would conflict with
	// "by-name/{name}", which is more specific than "{id}/{sub}".
	router.Handle("GET /celebrities/{id}/{sub}", subresources{
		"pdf": chain(http.HandlerFunc(config.PDFHandler.Export), protect, config.PDFLimiter),
	})

	// AI Assist Routes
	router.Handle("GET /ai/suggest-celebrities", chain(http.HandlerFunc(config.AIHandler.Suggest), config.AILimiter))
	router.Handle("GET /ai/autofill-celebrity/{name}", chain(http.HandlerFunc(config.AIHandler.Autofill), config.AILimiter))

	// Follow Routes
	follows := config.FollowHandler
	router.Handle("POST /follows/{celebrityId}", chain(http.HandlerFunc(follows.Follow), protect))
	router.Handle("DELETE /follows/{celebrityId}", chain(http.HandlerFunc(follows.Unfollow), protect))
	router.Handle("GET /follows", chain(http.HandlerFunc(follows.List), protect))
	router.Handle("GET /follows/status/{celebrityId}", chain(http.HandlerFunc(follows.Status), protect))

	// Locally stored profile images
	if config.UploadsDir != "" {
		prefix := strings.TrimRight(config.UploadsURLPrefix, "/") + "/"
		router.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(noListing{http.Dir(config.UploadsDir)})))
	}
}

// subresources dispatches on the {sub} path value.
type subresources map[string]http.Handler

func (s subresources) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := s[r.PathValue("sub")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.ServeHTTP(w, r)
}

// noListing hides directory indexes from the file server.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	if stat, err := f.Stat(); err == nil && stat.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
