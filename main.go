package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-manager/cache"
	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/database"
	"github.com/yeremiapane/restaurant-manager/middlewares"
	"github.com/yeremiapane/restaurant-manager/queue"
	"github.com/yeremiapane/restaurant-manager/router"
	"github.com/yeremiapane/restaurant-manager/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Printf("Seeding failed: %v", err)
		}
	}

	// Redis & RabbitMQ opsional, tanpa keduanya API tetap jalan
	store := cache.New(config.NewRedisClient(ctx, cfg.Redis), cfg.Redis.CacheTTL)

	var publisher queue.Publisher = queue.NoopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := queue.Dial(cfg.AMQP.URL)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			publisher = amqpPub
		}
	}
	defer publisher.Close()

	limiter := middlewares.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateInterval)

	r := router.SetupRouter(db, router.Dependencies{
		Config:    cfg,
		Cache:     store,
		Publisher: publisher,
		Limiter:   limiter,
	})
	if err := r.SetTrustedProxies(nil); err != nil {
		utils.ErrorLogger.Printf("SetTrustedProxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return utils.RunBlacklistJanitor(gctx, time.Hour)
	})
	g.Go(func() error {
		return limiter.RunSweeper(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.InfoLogger.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
