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

	"checkout-service/internal/checkout"
	"checkout-service/internal/config"
	"checkout-service/internal/httpx"
	kafkax "checkout-service/internal/kafka"
	"checkout-service/internal/metrics"
	"checkout-service/internal/postgres"
	"checkout-service/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis (order status cache)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order.placed notifications
	prod := kafkax.NewProducer(cfg.KafkaBrokers, checkout.TopicOrderPlaced, 1024, func(error) {
		metrics.RecordNotifyFailure()
	})
	prod.Start(ctx)

	// Engine & handler
	store := &postgres.Store{DB: db}
	engine := &checkout.Engine{
		Store:         store,
		Publisher:     &kafkax.Notifier{Producer: prod, Service: cfg.ServiceName},
		OnNotifyError: func(error) { metrics.RecordNotifyFailure() },
	}
	router := httpx.NewRouter()
	h := &httpx.CheckoutHandler{
		Engine: engine,
		Store:  store,
		Redis:  rdb,
	}
	h.Register(router, httpx.RequireAuth(cfg.JWTSecret))

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
