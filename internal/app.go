package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visitors/internal/controllers"
	"visitors/internal/providers"
	"visitors/internal/storage"
	"visitors/internal/structures"
)

type App struct {
	WebServer *http.Server
	store     storage.RecordStoreInterface
	logger    providers.Logger
	conf      *structures.Config
}

// NewHandler assembles the HTTP surface: health and metrics endpoints plus
// the instrumented, gzip-compressed visitor API.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	instrumentedAPI := providers.MetricsMiddleware(metrics, router.Handler())

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", gzhttp.GzipHandler(instrumentedAPI))
	return mux
}

func NewApp(healthController *controllers.HealthController, store storage.RecordStoreInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      NewHandler(healthController, conf, router, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:  store,
		logger: logger,
		conf:   conf,
	}
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down.
func (app *App) Run() error {
	defer app.logger.Close()
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	return app.Shutdown()
}

// Shutdown drains in-flight requests first, so removing an empty store
// directory cannot race a save.
func (app *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return err
	}

	removed, err := app.store.Cleanup()
	if err != nil {
		app.logger.Errorf(providers.TypeApp, "Store cleanup error: %s", err)
	} else if removed {
		app.logger.Infof(providers.TypeApp, "Removed empty %s directory", storage.Dir)
	}

	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
