package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ecofinds/backend/internal/config"
	"github.com/ecofinds/backend/internal/es"
	"github.com/ecofinds/backend/internal/handlers"
	"github.com/ecofinds/backend/internal/logging"
	loggingmw "github.com/ecofinds/backend/internal/middleware/logging"
	"github.com/ecofinds/backend/internal/mykafka"
	"github.com/ecofinds/backend/internal/service"
	httpserver "github.com/ecofinds/backend/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	var prod *mykafka.Producer
	if cfg.KafkaAddress != "" {
		prod = mykafka.NewProducer([]string{cfg.KafkaAddress})
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch error: %v", err)
	}

	jwtSecret := []byte(cfg.JWTSecret)

	cartSvc := &service.CartService{DB: db}
	identitySvc := &service.IdentityService{DB: db}
	catalogSvc := &service.CatalogService{DB: db, Cart: cartSvc}
	wishlistSvc := &service.WishlistService{DB: db}
	checkoutSvc := &service.CheckoutService{DB: db}
	orderSvc := &service.OrderService{DB: db}
	statsSvc := &service.StatsService{DB: db}
	seedSvc := &service.SeedService{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		JWTSecret: jwtSecret,
		Auth:      &handlers.AuthHandler{Identity: identitySvc, JWTSecret: jwtSecret, Producer: prod},
		Category:  &handlers.CategoryHandler{Catalog: catalogSvc},
		Listing:   &handlers.ListingHandler{Catalog: catalogSvc, Producer: prod, ES: esClient, Index: cfg.ListingsIndex},
		Cart:      &handlers.CartHandler{Cart: cartSvc, Producer: prod},
		Order:     &handlers.OrderHandler{Orders: orderSvc, Checkout: checkoutSvc, Producer: prod},
		Wishlist:  &handlers.WishlistHandler{Wishlist: wishlistSvc},
		Search:    &handlers.SearchHandler{Catalog: catalogSvc, ES: esClient, Index: cfg.ListingsIndex},
		Stats:     &handlers.StatsHandler{Stats: statsSvc},
		Users:     &handlers.UserHandler{Identity: identitySvc, Catalog: catalogSvc},
		System:    &handlers.SystemHandler{DB: db, Seed: seedSvc},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
