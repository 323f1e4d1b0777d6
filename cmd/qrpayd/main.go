package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkorobov/qrpay/config"
	"github.com/mkorobov/qrpay/internal/auth"
	handler "github.com/mkorobov/qrpay/internal/handler/http"
	"github.com/mkorobov/qrpay/internal/idempotency"
	"github.com/mkorobov/qrpay/internal/logger"
	"github.com/mkorobov/qrpay/internal/metrics"
	"github.com/mkorobov/qrpay/internal/middleware"
	"github.com/mkorobov/qrpay/internal/repository"
	"github.com/mkorobov/qrpay/internal/repository/postgres"
	"github.com/mkorobov/qrpay/internal/sberqr"
	"github.com/mkorobov/qrpay/internal/service"
	"github.com/mkorobov/qrpay/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const authTokenKey = "f53ac685bbceebd75043e6be2e06ee07"

// claims held this long block a duplicate create for the same application
const idempotencyTTL = 24 * time.Hour

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error validating config: %v", err)
	}

	// initialize logger
	zlog, err := logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer zlog.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		zlog.Fatal("Error migrating database", zap.Error(err))
	}

	// initialize redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zlog.Fatal("Error connecting to redis", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		zlog.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// prometheus registry
	promReg := prometheus.NewRegistry()

	// gateway client
	gateway, err := sberqr.NewClient(sberqr.ClientOptions{
		BaseURL:      cfg.GatewayBaseURL,
		ClientID:     cfg.GatewayClientID,
		ClientSecret: cfg.GatewayClientSecret,
		Metrics:      metrics.New(promReg),
	})
	if err != nil {
		zlog.Fatal("Error creating gateway client", zap.Error(err))
	}

	// dependency injection
	appRepo := repository.NewApplicationRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	idemStore := idempotency.NewStore(rdb, idempotencyTTL)

	paymentService := service.NewPaymentService(appRepo, orderRepo, gateway, idemStore, cfg.GatewayQRID)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// status polling worker
	poller := worker.NewStatusPoller(paymentService)
	go poller.Run(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(zlog))

	router.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token))
		group.Post("/api/orders/{applicationID}", paymentHandler.CreateOrder())
		group.Get("/api/orders/{orderID}/status", paymentHandler.OrderStatus())
		group.Post("/api/orders/{orderID}/revoke", paymentHandler.RevokeOrder())
		group.Post("/api/orders/{orderID}/cancel", paymentHandler.CancelOrder())
		group.Post("/api/orders/registry", paymentHandler.Registry())
	})

	zlog.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		zlog.Fatal("Error starting server", zap.Error(err))
	}
}
