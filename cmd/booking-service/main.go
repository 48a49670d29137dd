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

	"github.com/andreasstove999/railway-system/booking-service-go/internal/auth"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/config"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/db"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/events"
	httpapi "github.com/andreasstove999/railway-system/booking-service-go/internal/http"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/sequence"
)

func main() {
	logger := log.New(os.Stdout, "[booking-service] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	// --- authorization ---
	perms, err := auth.LoadPermissions(cfg.PermissionsFile)
	if err != nil {
		logger.Fatalf("permissions: %v", err)
	}
	policy, err := auth.NewPolicy(ctx, perms)
	if err != nil {
		logger.Fatalf("policy: %v", err)
	}

	// --- AMQP ---
	var publisher booking.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn, sequence.NewRepository(pool))
		if err != nil {
			logger.Fatalf("publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	} else {
		logger.Printf("RABBITMQ_URL not set, event publishing disabled")
	}

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:           logger,
		Catalog:          railway.NewPostgresRepository(pool),
		Bookings:         booking.NewService(booking.NewPostgresStore(pool), publisher, logger),
		Policy:           policy,
		RequestTimeout:   cfg.RequestTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown requested")
	case err := <-errCh:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}
