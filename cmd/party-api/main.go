package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/party-api/internal/config"
	"github.com/dimitrije/party-api/internal/database"
	"github.com/dimitrije/party-api/internal/handlers"
	"github.com/dimitrije/party-api/internal/hub"
	"github.com/dimitrije/party-api/internal/logging"
	"github.com/dimitrije/party-api/internal/metrics"
	authmw "github.com/dimitrije/party-api/internal/middleware"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/dimitrije/party-api/internal/shard"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New("party-api", cfg.LogLevel)
	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	eventHub := hub.NewHub()
	go eventHub.Run(hubCtx)

	shardCtx, stopShard := context.WithCancel(context.Background())
	defer stopShard()
	teamShard := shard.New(shard.Config{
		MaxTeams:      cfg.Shard.MaxTeams,
		MaxApplicants: cfg.Shard.MaxApplicants,
		QueueSize:     cfg.Shard.QueueSize,
	}, eventHub, m, logger)
	go teamShard.Run(shardCtx)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	playerService := services.NewPlayerService(db, teamShard, logger)
	teamService := services.NewTeamService(teamShard, m, logger)

	n, err := playerService.LoadOnline(ctx)
	if err != nil {
		log.Fatalf("Failed to restore roster: %v", err)
	}
	logger.Info("roster restored", "players", n)

	var limiter authmw.RateLimiter
	if cfg.RateLimitEnabled() {
		rl, err := authmw.NewRedisRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("rate limiting disabled, redis unavailable", "addr", cfg.Redis.Addr, "error", err)
		} else {
			limiter = rl
			defer rl.Close()
		}
	}

	teamHandler := handlers.NewTeamHandler(teamService)
	playerHandler := handlers.NewPlayerHandler(playerService, teamService)
	adminHandler := handlers.NewAdminHandler(teamService, eventHub)
	sseHandler := handlers.NewSSEHandler(eventHub, teamService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/players/me", playerHandler.GetMe)
	protected.Get("/players/me/team", playerHandler.GetMyTeam)
	protected.Delete("/players/me/team", teamHandler.Leave)
	protected.Post("/players/me/connect", playerHandler.Connect)
	protected.Post("/players/me/disconnect", playerHandler.Disconnect)

	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Delete("/teams/:id", teamHandler.Disband)
	protected.Post("/teams/:id/join", teamHandler.Join)
	protected.Post("/teams/:id/members", teamHandler.AddMembers)
	protected.Get("/teams/:id/members/:memberId", teamHandler.GetMembership)
	protected.Delete("/teams/:id/members/:memberId", teamHandler.Kick)
	protected.Post("/teams/:id/leader", teamHandler.AppointLeader)
	protected.Post("/teams/:id/applicants",
		authmw.RateLimit(limiter, "apply", cfg.RateLimit.ApplyLimit, cfg.RateLimit.ApplyWindow, m, teamHandler.Apply))
	protected.Delete("/teams/:id/applicants", teamHandler.ClearApplicants)
	protected.Delete("/teams/:id/applicants/:playerId", teamHandler.RemoveApplicant)
	protected.Post("/teams/:id/applicants/:playerId/accept", teamHandler.AcceptApplicant)

	protected.Get("/teams/:id/events", sseHandler.Connect)
	protected.Post("/sse/:clientId/subscribe/:id", sseHandler.Subscribe)
	protected.Post("/sse/:clientId/unsubscribe/:id", sseHandler.Unsubscribe)

	admin := protected.Group("/admin")
	admin.Use(authmw.RequireAdmin())
	admin.Delete("/teams/:id", adminHandler.DisbandTeam)
	admin.Get("/stats", adminHandler.Stats)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	defer stopMetrics()
	go func() {
		if err := metrics.Serve(metricsCtx, cfg.MetricsAddr, registry, logger); err != nil {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// SSE streams stay open until the hub stops, so the hub goes before the
	// HTTP server is drained.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopShard()
	<-teamShard.Done()
	stopHub()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	stopMetrics()
}
