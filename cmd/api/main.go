package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gestionretard/internal/account"
	"gestionretard/internal/attendance"
	"gestionretard/internal/config"
	"gestionretard/internal/directory"
	"gestionretard/internal/httpapi"
	"gestionretard/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func run(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db.Client); err != nil {
		return err
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	if !redisClient.Healthy(context.Background()) {
		log.Printf("warning: redis not reachable at %s, stats cache disabled", cfg.RedisAddr)
	}

	accounts := account.NewService(account.NewRepository(db.Client))
	dir := directory.NewService(directory.NewRepository(db.Client))
	att := attendance.NewService(attendance.NewRepository(db.Client), redisClient.Client, cfg.StatsCacheTTL)

	health := func(ctx context.Context) (bool, bool) {
		return db.Client.PingContext(ctx) == nil, redisClient.Healthy(ctx)
	}

	server := httpapi.NewServer(cfg, accounts, dir, att, health)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Printf("starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	// Give outstanding requests 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}
