package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tusharrdev/greencart-backend/internal/cart"
	"github.com/tusharrdev/greencart-backend/internal/catalog"
	"github.com/tusharrdev/greencart-backend/internal/config"
	"github.com/tusharrdev/greencart-backend/internal/db"
	"github.com/tusharrdev/greencart-backend/internal/events"
	httpserver "github.com/tusharrdev/greencart-backend/internal/http"
	"github.com/tusharrdev/greencart-backend/internal/order"
	"github.com/tusharrdev/greencart-backend/internal/payments"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	logger := log.New(os.Stdout, "[greencart] ", log.LstdFlags|log.Lshortfile)

	// DB
	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	cartRepo := cart.NewRepository(database)

	// Redis product cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	productRepo := catalog.NewCachedRepository(
		catalog.NewRepository(database), redisClient, cfg.CacheTTL, logger)

	// RabbitMQ
	rabbitConn := events.MustDialRabbit(cfg.RabbitURL)
	defer rabbitConn.Close()

	publisher, err := events.NewPublisher(rabbitConn)
	if err != nil {
		logger.Fatalf("create publisher: %v", err)
	}
	defer publisher.Close()

	// Stripe, one handle for the process
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.Currency)

	svc := order.NewService(orderRepo, productRepo, cartRepo, gateway, gateway, publisher, logger)

	// HTTP
	router := httpserver.NewRouter(svc, httpserver.NewAuth(cfg.JWTSecret))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		logger.Printf("greencart-backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
