package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	application "github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/app"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/healthcheck_head"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_approve_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_create_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_notifications_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_reject_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/order_status_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/orders_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/ping_get"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/handlers/rest/proof_upload_post"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/clock"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/config"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/dotenv"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/kafka"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/middlewares/graceful_shutdown"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/middlewares/metrics"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/middlewares/rate_limiter"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/middlewares/timeout"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/smtpclient"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/repository/proof"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger/zap_adapter"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/nanmu42/gzip"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	bootLogger, err := zap_adapter.NewZapAdapter(zap_adapter.Options{})
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	bootLog := bootLogger.With()

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			bootLog.With(logger.NewField("error", err)).Error("failed to load .env file")
			return
		}
	} else {
		bootLog.Warn("no .env file found, using system environment variables")
		if err := dotenv.ApplyFlags(); err != nil {
			bootLog.With(logger.NewField("error", err)).Error("failed to apply flags")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog.With(logger.NewField("error", err)).Error("load config")
		return
	}

	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.Options{
		Level:    cfg.Logger.Level,
		FilePath: cfg.Logger.Path,
	})
	if err != nil {
		bootLog.With(logger.NewField("error", err)).Error("configure logger")
		return
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.With(logger.NewField("store", cfg.Store.Name)).Info("starting storefront order service")

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.With(logger.NewField("error", err)).Error("application failed")
		return
	}
}

//nolint:contextcheck // shutdown contexts are derived from context.Background on purpose
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	mailClient, err := smtpclient.NewClient(ctx, log, &cfg.SMTP)
	if err != nil {
		return fmt.Errorf("SMTP client: %w", err)
	}

	var producer sarama.SyncProducer
	if cfg.KafkaEnabled() {
		producer, err = kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				runLog.With(logger.NewField("error", err)).Error("failed to close kafka producer")
			}
		}()
	}

	// Background tasks stop with tasksCtx, after the HTTP server is drained.
	tasksCtx, stopTasks := context.WithCancel(context.Background())
	defer stopTasks()

	app, err := application.InitializeApplication(tasksCtx, log, mailClient, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx is the BaseContext of every connection. It is not cancelled
	// on SIGTERM, only after server.Shutdown so in-flight requests complete.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, app, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.With(logger.NewField("port", cfg.Server.Port)).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.With(logger.NewField("port", cfg.Server.PprofPort)).Info("pprof server starting")
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil channel when pprof is disabled
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx must not derive from ctx, which is already cancelled here.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	app.Hub.Close()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.With(logger.NewField("error", shutdownErr)).Error("pprof server shutdown error")
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()

	// No new intents can arrive once the server is down.
	if outboxErr := app.Outbox.Close(shutdownCtx); outboxErr != nil {
		runLog.With(logger.NewField("error", outboxErr)).Error("outbox drain incomplete")
	} else {
		runLog.Info("outbox drained")
	}

	stopTasks()
	<-app.BackgroundWorkers.Done()

	if err != nil || shutdownErr != nil {
		runLog.Info("graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.ProofStorage.Check)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log, clock.New())).Methods(http.MethodGet)
	router.Handle("/ws", app.Hub).Methods(http.MethodGet)
	router.PathPrefix(proof.PublicPrefix).
		Handler(http.StripPrefix(proof.PublicPrefix, http.FileServer(http.Dir(app.ProofStorage.Dir())))).
		Methods(http.MethodGet, http.MethodHead)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	api.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	api.Use(gzip.DefaultHandler().WrapHandler)

	limited := rate_limiter.Middleware(log, cfg.Server.RateLimiterBurst, app.RateLimiter)

	api.Handle("/create-order", limited(order_create_post.New(log, app.ServiceOrder))).
		Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/upload-proof", limited(proof_upload_post.New(log, app.ServiceOrder, cfg.Proofs.UploadMaxBytes))).
		Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/order-status/{orderId}", order_status_get.New(log, app.ServiceOrder)).
		Methods(http.MethodGet, http.MethodOptions)

	api.Handle("/orders", orders_get.New(log, app.ServiceOrder)).
		Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/orders/{id}/approve", order_approve_post.New(log, app.ServiceOrder)).
		Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/orders/{id}/reject", order_reject_post.New(log, app.ServiceOrder)).
		Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/orders/{id}/notifications", order_notifications_get.New(log, app.ServiceOrder)).
		Methods(http.MethodGet, http.MethodOptions)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
