package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebnet/backend/internal/gateway/middleware"
	ai_http "github.com/celebnet/backend/internal/modules/ai/interfaces/http"
	auth_http "github.com/celebnet/backend/internal/modules/auth/interfaces/http"
	celebrity_http "github.com/celebnet/backend/internal/modules/celebrity/interfaces/http"
	follow_http "github.com/celebnet/backend/internal/modules/follow/interfaces/http"
	pdf_http "github.com/celebnet/backend/internal/modules/pdf/interfaces/http"
	"github.com/celebnet/backend/internal/shared/identity"
	"github.com/celebnet/backend/internal/shared/metrics"
)

type rejectAll struct{}

func (rejectAll) Verify(string) (identity.Identity, error) {
	return identity.Identity{}, errors.New("invalid")
}

func (rejectAll) IdentityExists(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func tooMany(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
}

func testConfig(t *testing.T) RouterConfig {
	t.Helper()
	return RouterConfig{
		AuthHandler:                   auth_http.NewAuthHandler(nil, nil),
		CelebrityHandler:              celebrity_http.NewCelebrityHandler(nil, nil),
		FollowHandler:                 follow_http.NewFollowHandler(nil, nil),
		AIHandler:                     ai_http.NewAIHandler(nil, nil),
		PDFHandler:                    pdf_http.NewPDFHandler(nil, nil),
		AuthMiddleware:                middleware.NewAuthMiddleware(rejectAll{}, rejectAll{}, nil),
		MetricsHandler:                metrics.Handler(metrics.NewRegistry()),
		AILimiter:                     tooMany,
		CelebrityMutationsRequireAuth: true,
	}
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestSetupRoutes_Public(t *testing.T) {
	router := NewRouter()
	SetupRoutes(router, testConfig(t))
	h := router.Handler()

	rec := do(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/celebrities/not-a-uuid").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPatch, "/celebrities").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/nowhere").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/celebrities/"+uuid.NewString()+"/csv").Code)
}

func TestSetupRoutes_ProtectedRequireToken(t *testing.T) {
	router := NewRouter()
	SetupRoutes(router, testConfig(t))
	h := router.Handler()
	id := uuid.NewString()

	for _, route := range []struct{ method, target string }{
		{http.MethodPost, "/celebrities"},
		{http.MethodPut, "/celebrities/" + id},
		{http.MethodDelete, "/celebrities/" + id},
		{http.MethodPost, "/celebrities/" + id + "/image"},
		{http.MethodGet, "/celebrities/" + id + "/pdf"},
		{http.MethodPost, "/follows/" + id},
		{http.MethodDelete, "/follows/" + id},
		{http.MethodGet, "/follows"},
		{http.MethodGet, "/follows/status/" + id},
	} {
		rec := do(t, h, route.method, route.target)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.method+" "+route.target)
	}
}

func TestSetupRoutes_MutationsOpenWhenConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.CelebrityMutationsRequireAuth = false
	router := NewRouter()
	SetupRoutes(router, cfg)

	// reaches the handler, which rejects the id before touching the service
	rec := do(t, router.Handler(), http.MethodPut, "/celebrities/bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, router.Handler(), http.MethodDelete, "/celebrities/bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupRoutes_AILimiterApplied(t *testing.T) {
	router := NewRouter()
	SetupRoutes(router, testConfig(t))

	assert.Equal(t, http.StatusTooManyRequests, do(t, router.Handler(), http.MethodGet, "/ai/suggest-celebrities?q=x").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, router.Handler(), http.MethodGet, "/ai/autofill-celebrity/Adele").Code)
}

func TestSetupRoutes_ServesLocalUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "celebrities"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "celebrities", "a.jpg"), []byte("jpeg"), 0o644))

	cfg := testConfig(t)
	cfg.UploadsDir = dir
	cfg.UploadsURLPrefix = "/uploads"
	router := NewRouter()
	SetupRoutes(router, cfg)
	h := router.Handler()

	rec := do(t, h, http.MethodGet, "/uploads/celebrities/a.jpg")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/uploads/celebrities/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "a.jpg"))
}
