package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Xenpaii/b-store/internal/catalog"
	"github.com/Xenpaii/b-store/internal/config"
	"github.com/Xenpaii/b-store/internal/db"
	"github.com/Xenpaii/b-store/internal/graph"
	"github.com/Xenpaii/b-store/internal/logger"
	"github.com/Xenpaii/b-store/internal/metrics"
	"github.com/Xenpaii/b-store/internal/middleware"
	"github.com/Xenpaii/b-store/internal/order"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	registry := metrics.NewRegistry()

	resolver := &graph.Resolver{
		CatalogSvc: catalogSvc,
		OrderSvc:   orderSvc,
		Metrics:    registry,
	}

	router := setupRouter(graph.NewHandler(resolver), registry, cfg.AllowedOrigin)

	logger.L().Info("🚀 GraphQL server running",
		zap.String("addr", "http://localhost:"+cfg.AppPort+"/query"),
	)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}

func setupRouter(query http.Handler, registry *metrics.Registry, allowedOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(registry.Snapshot())
	})

	mux.Handle("/query", middleware.CORSMiddleware(allowedOrigin)(
		middleware.RateLimitMiddleware(query),
	))

	return logger.RequestIDMiddleware(middleware.LoggingMiddleware(mux))
}
