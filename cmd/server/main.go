package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/config"
	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/handlers"
	"github.com/HY-spring-study/OJT-jinsoo/internal/middleware"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.SetJWTSecret(cfg.Auth.JWTSecret)

	db, err := database.NewPostgresDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := db.InitializeTables(ctx); err != nil {
		log.Fatalf("Failed to initialize tables: %v", err)
	}
	if err := db.SeedBoards(ctx); err != nil {
		log.Fatalf("Failed to seed boards: %v", err)
	}

	var metrics *utils.MetricsCollector
	if cfg.Server.MetricsEnabled {
		metrics = utils.NewMetricsCollector()
	}

	server := handlers.NewServer(db, metrics)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	mux := http.NewServeMux()
	for path, handler := range server.Routes() {
		mux.HandleFunc(path, middleware.ApplyCORS(middleware.ApplyJWTMiddleware(handler, path), corsConfig))
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("Starting server on %s", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM so in-flight requests finish.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("Database close error: %v", err)
	}
}
