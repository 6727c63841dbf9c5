package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/celebnet/backend/internal/gateway"
	"github.com/celebnet/backend/internal/gateway/middleware"
	"github.com/celebnet/backend/internal/modules/ai"
	aiApp "github.com/celebnet/backend/internal/modules/ai/application"
	"github.com/celebnet/backend/internal/modules/ai/infrastructure/gemini"
	"github.com/celebnet/backend/internal/modules/auth"
	"github.com/celebnet/backend/internal/modules/celebrity"
	"github.com/celebnet/backend/internal/modules/filestorage"
	"github.com/celebnet/backend/internal/modules/follow"
	"github.com/celebnet/backend/internal/modules/pdf"
	pdfApp "github.com/celebnet/backend/internal/modules/pdf/application"
	"github.com/celebnet/backend/internal/modules/pdf/infrastructure/chromium"
	"github.com/celebnet/backend/internal/modules/pdf/infrastructure/images"
	"github.com/celebnet/backend/internal/shared/infrastructure/config"
	"github.com/celebnet/backend/internal/shared/infrastructure/database"
	"github.com/celebnet/backend/internal/shared/logger"
	"github.com/celebnet/backend/internal/shared/metrics"
	"github.com/celebnet/backend/pkg/migration"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := logger.SetupDefault(os.Stdout, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// 1. Infrastructure
	log.Info("connecting to postgres", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.AutoMigrate(cfg.Database.URL(), cfg.Server.MigrationsPath, log); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	registry := metrics.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. Modules
	fileModule, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		return err
	}
	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry, log)
	celebrityModule := celebrity.NewModule(db, fileModule.Service(), log)
	followModule := follow.NewModule(db, celebrityModule.Finder(), collector, log)
	aiModule := ai.NewModule(newGenerator(ctx, cfg.Gemini, log), collector, log)
	pdfModule := pdf.NewModule(
		celebrityModule.Finder(),
		chromium.NewRenderer(chromium.Config{ExecPath: cfg.PDF.ChromePath}),
		images.NewFetcher(images.Config{
			LocalPrefix: cfg.FileStorage.LocalBaseURL,
			LocalDir:    fileModule.LocalDir(),
		}),
		collector,
		pdfApp.Config{
			MaxConcurrentRenders: cfg.PDF.MaxConcurrentRenders,
			RenderTimeout:        cfg.PDF.RenderTimeout,
		},
		log,
	)

	// 3. Middleware
	authMiddleware := middleware.NewAuthMiddleware(authModule.Tokens(), authModule.Service(), log)

	var aiLimiter gateway.Middleware
	if redisClient != nil && cfg.RateLimit.AIPerMinute > 0 {
		aiLimiter = middleware.NewFixedWindowLimiter("ai", middleware.NewRedisWindowCounter(redisClient),
			cfg.RateLimit.AIPerMinute, time.Minute, collector, log).Middleware
	}
	var pdfLimiter gateway.Middleware
	if cfg.RateLimit.PDFPerMinute > 0 {
		limiter := middleware.NewUserRateLimiter("pdf", cfg.RateLimit.PDFPerMinute, 10*time.Minute, collector, log)
		defer limiter.Stop()
		pdfLimiter = limiter.Middleware
	}

	// 4. Routes
	router := gateway.NewRouter()
	router.Use(
		middleware.NewRecovery(log),
		middleware.NewLogging(log),
		middleware.NewPrometheus(collector),
		middleware.NewCORS(cfg.Server.Origins()),
	)
	gateway.SetupRoutes(router, gateway.RouterConfig{
		AuthHandler:                   authModule.HTTPHandler(),
		CelebrityHandler:              celebrityModule.HTTPHandler(),
		FollowHandler:                 followModule.HTTPHandler(),
		AIHandler:                     aiModule.HTTPHandler(),
		PDFHandler:                    pdfModule.HTTPHandler(),
		AuthMiddleware:                authMiddleware,
		MetricsHandler:                metrics.Handler(registry),
		AILimiter:                     aiLimiter,
		PDFLimiter:                    pdfLimiter,
		CelebrityMutationsRequireAuth: cfg.Server.CelebrityMutationsRequireAuth,
		UploadsDir:                    fileModule.LocalDir(),
		UploadsURLPrefix:              uploadsPath(cfg.FileStorage.LocalBaseURL),
	})

	// 5. Serve
	server := gateway.NewServer(cfg.Server.Port, router.Handler(), log)
	return server.Run(ctx)
}

// connectRedis returns nil when Redis is unreachable. The AI limiter is then
// disabled rather than failing startup.
func connectRedis(ctx context.Context, cfg database.RedisConfig, log *slog.Logger) *redis.Client {
	client, err := database.NewRedis(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable, AI rate limiting disabled", "addr", cfg.Addr(), "error", err)
		return nil
	}
	log.Info("connected to redis", "addr", cfg.Addr())
	return client
}

func newGenerator(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) aiApp.Generator {
	if cfg.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI endpoints will return 503")
		return aiApp.DisabledGenerator{}
	}
	gen, err := gemini.NewGenerator(ctx, gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model})
	if err != nil {
		log.Error("failed to create gemini client, AI endpoints disabled", "error", err)
		return aiApp.DisabledGenerator{}
	}
	return gen
}

// uploadsPath is the URL path under which local uploads are served. The base
// URL may be absolute ("http://host/uploads") or a bare path.
func uploadsPath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" {
		return "/uploads"
	}
	return "/" + strings.Trim(u.Path, "/")
}
