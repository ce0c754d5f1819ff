package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"daycare/internal/attendance"
	"daycare/internal/auth"
	"daycare/internal/child"
	"daycare/internal/cloudinary"
	"daycare/internal/config"
	"daycare/internal/handler"
	"daycare/internal/httpmiddleware"
	"daycare/internal/logging"
	"daycare/internal/metrics"
	"daycare/internal/mood"
	"daycare/internal/payment"
	"daycare/internal/queue"
	"daycare/internal/salary"
	"daycare/internal/stats"
	"daycare/internal/storage"
	"daycare/internal/store"
	"daycare/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		level.Error(logging.New("api", "info", "")).Log("msg", "config load failed", "err", err)
		os.Exit(1)
	}
	logger := logging.New("api", cfg.LogLevel, cfg.LogFile)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logger); err != nil {
		level.Error(logger).Log("msg", "http server failed", "err", err)
		os.Exit(1)
	}
}

type repositories struct {
	users           user.Repository
	children        child.Repository
	staff           attendance.Repository
	childAttendance attendance.Repository
	moods           mood.Repository
	payments        payment.Repository
	salaries        salary.Repository
}

func memoryRepositories() repositories {
	return repositories{
		users:           user.NewMemoryRepository(),
		children:        child.NewMemoryRepository(),
		staff:           attendance.NewMemoryRepository(attendance.Staff),
		childAttendance: attendance.NewMemoryRepository(attendance.Child),
		moods:           mood.NewMemoryRepository(),
		payments:        payment.NewMemoryRepository(),
		salaries:        salary.NewMemoryRepository(),
	}
}

func postgresRepositories(db *store.DB) repositories {
	return repositories{
		users:           user.NewPostgresRepository(db.Client),
		children:        child.NewPostgresRepository(db.Client),
		staff:           attendance.NewPostgresRepository(db.Client, attendance.Staff),
		childAttendance: attendance.NewPostgresRepository(db.Client, attendance.Child),
		moods:           mood.NewPostgresRepository(db.Client),
		payments:        payment.NewPostgresRepository(db.Client),
		salaries:        salary.NewPostgresRepository(db.Client),
	}
}

func runHTTP(cfg config.App, logger log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db    *store.DB
		repos repositories
	)
	if cfg.StoreBackend == "memory" {
		level.Warn(logger).Log("msg", "using in-memory store; data is lost on exit")
		repos = memoryRepositories()
	} else {
		var err error
		db, err = store.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if cfg.AutoMigrate {
			if err := store.Migrate(db.Client.DB); err != nil {
				return err
			}
			level.Info(logger).Log("msg", "migrations applied")
		}
		repos = postgresRepositories(db)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, cfg.QueueKey)
	}

	var limiter httpmiddleware.Limiter = httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	if cfg.RateLimitBackend == "redis" {
		limiter = httpmiddleware.NewRedisWindow(redisClient.Client, cfg.RateLimitPerMin)
	}

	var images child.ImageStore
	if cfg.Cloudinary.Configured() {
		images = cloudinary.New(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		level.Info(logger).Log("msg", "cloudinary configured", "cloud", cfg.Cloudinary.CloudName)
	} else {
		if err := os.MkdirAll(cfg.ImageDir, 0o755); err != nil {
			return err
		}
		images = storage.NewLocal(cfg.ImageDir, cfg.PublicBaseURL)
		level.Info(logger).Log("msg", "cloudinary not configured, storing images locally", "dir", cfg.ImageDir)
	}

	signer := auth.NewSigner(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL)
	resolver := child.NewResolver(repos.children)
	moods := mood.NewService(repos.moods, repos.children, q, log.With(logger, "service", "mood"))

	// A memory queue is only visible to this process, so sync profiles here.
	if cfg.QueueBackend == "memory" {
		go func() {
			if err := moods.RunProfileSync(ctx, q); err != nil {
				level.Error(logger).Log("msg", "mood profile sync failed", "err", err)
			}
		}()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.AccessLog(logger, "/healthz", "/metrics"))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", httpmiddleware.RequestIDHeader},
		ExposeHeaders:   []string{httpmiddleware.RequestIDHeader},
		MaxAge:          24 * time.Hour,
	}))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(metrics.GinMiddleware())
	r.Use(httpmiddleware.RateLimit(limiter, logger))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db == nil || db.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy || (!redisHealthy && cfg.QueueBackend == "redis") {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "redis": redisHealthy, "db": dbHealthy})
	})
	if !cfg.Cloudinary.Configured() {
		r.Static("/images", cfg.ImageDir)
	}

	handler.Register(r.Group("/api"), handler.Deps{
		Signer:          signer,
		Users:           user.NewService(repos.users, signer),
		Staff:           attendance.NewStaffService(repos.staff, repos.users),
		ChildAttendance: attendance.NewChildService(repos.childAttendance, repos.children),
		Moods:           moods,
		Stats:           stats.NewService(resolver, repos.childAttendance, repos.moods),
		Children:        child.NewService(repos.children, repos.users, images, log.With(logger, "service", "child")),
		Resolver:        resolver,
		Payments:        payment.NewService(repos.payments, repos.users),
		Salaries:        salary.NewService(repos.salaries, repos.users),
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		level.Info(logger).Log("msg", "starting server", "addr", srv.Addr, "store", cfg.StoreBackend, "queue", cfg.QueueBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "server error", "err", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	level.Info(logger).Log("msg", "shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		level.Warn(logger).Log("msg", "server forced shutdown", "err", err)
	}
	cancel()

	level.Info(logger).Log("msg", "server exited")
	return nil
}
