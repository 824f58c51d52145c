// Package server boots the application: configuration, store connections,
// route table, and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mahfuzanam/bloodlink/app/controllers"
	"github.com/mahfuzanam/bloodlink/app/repositories"
	"github.com/mahfuzanam/bloodlink/app/routes"
	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/config"
	"github.com/mahfuzanam/bloodlink/pkg/audit"
	"github.com/mahfuzanam/bloodlink/pkg/cache"
	"github.com/mahfuzanam/bloodlink/pkg/database"
	"github.com/mahfuzanam/bloodlink/pkg/logger"
	"github.com/mahfuzanam/bloodlink/pkg/metrics"
	"github.com/mahfuzanam/bloodlink/pkg/middleware"
	"github.com/mahfuzanam/bloodlink/pkg/payment"
	"github.com/mahfuzanam/bloodlink/pkg/reqid"
	"github.com/mahfuzanam/bloodlink/pkg/router"
	"github.com/mahfuzanam/bloodlink/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Run boots every subsystem and blocks until SIGINT/SIGTERM, then shuts the
// listener and the stores down in reverse order.
func Run() error {
	config.Load()

	if err := database.Connect(); err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	cache.Connect()
	storage.Connect()

	trail := audit.New(database.AuditLog())

	r := BuildRouter(trail)

	srv := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	trail.Close()
	if err := cache.Close(); err != nil {
		logger.Warn("cache close", "error", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("store disconnect", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

// BuildRouter wires repositories, services, controllers, and the middleware
// stack into the route table. Exported for the CLI's route listing.
func BuildRouter(trail *audit.Trail) *router.Router {
	userRepo := repositories.NewUserRepository()
	donationRepo := repositories.NewDonationRepository()
	blogRepo := repositories.NewBlogRepository()
	fundingRepo := repositories.NewFundingRepository()

	userSvc := services.NewUserService(userRepo, trail, storage.Default())
	donationSvc := services.NewDonationService(donationRepo, userRepo)
	searchSvc := services.NewSearchService(userRepo)
	statsSvc := services.NewStatsService(userRepo, donationRepo, fundingRepo, blogRepo)
	blogSvc := services.NewBlogService(blogRepo, trail)
	fundingSvc := services.NewFundingService(fundingRepo, payment.NewClient(config.StripeSecretKey()))

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Register(r, routes.Controllers{
		Auth:      controllers.NewAuthController(),
		Users:     controllers.NewUserController(userSvc),
		Donations: controllers.NewDonationController(donationSvc),
		Search:    controllers.NewSearchController(searchSvc),
		Stats:     controllers.NewStatsController(statsSvc),
		Blogs:     controllers.NewBlogController(blogSvc),
		Fundings:  controllers.NewFundingController(fundingSvc),
		Health:    controllers.NewHealthController(database.Health),
	}, userRepo)

	return r
}
