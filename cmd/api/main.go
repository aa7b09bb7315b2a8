package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/homecare-scheduler/internal/config"
	"github.com/harentsoaR/homecare-scheduler/internal/handlers"
	"github.com/harentsoaR/homecare-scheduler/internal/logging"
	"github.com/harentsoaR/homecare-scheduler/internal/middleware"
	"github.com/harentsoaR/homecare-scheduler/internal/services"
	"github.com/harentsoaR/homecare-scheduler/internal/store"
	"github.com/harentsoaR/homecare-scheduler/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("invalid logging configuration")
	}
	log.Info().
		Str("mongo_database", cfg.MongoDatabase).
		Str("api_port", cfg.APIPort).
		Strs("default_doctors", cfg.DefaultDoctors).
		Dur("session_idle_ttl", cfg.SessionIdleTTL).
		Msg("configuration loaded")
	utils.SetJWTSecret(cfg.JWTSecret)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB is not reachable")
	}
	db := client.Database(cfg.MongoDatabase)
	log.Info().Msg("connected to MongoDB")

	users := store.NewUserStore(db)
	activityStore := store.NewActivityStore(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}
	if err := activityStore.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	// --- Initialize Services ---
	sessions := services.NewSessionStore(cfg.DefaultDoctors, cfg.SessionIdleTTL)
	activity := services.NewActivityService(activityStore)
	authLimiter := middleware.NewClientLimiter(cfg.AuthRatePerSec, cfg.AuthRateBurst)

	sweeper, err := sessions.StartSweeper(cfg.SessionSweep, func() {
		authLimiter.Prune(time.Hour)
	})
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.SessionSweep).Msg("invalid session sweep schedule")
	}
	defer sweeper.Stop()

	h := handlers.NewHandler(users, activity, sessions)

	// --- Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	r, err := middleware.NewEngine(cfg.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid router configuration")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	h.Routes(r, middleware.RateLimit(authLimiter))

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
