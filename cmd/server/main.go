package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/acadash/backend/api/handler"
	"github.com/acadash/backend/internal/config"
	"github.com/acadash/backend/internal/infrastructure/canvas"
	"github.com/acadash/backend/internal/infrastructure/googlecal"
	mongoInfra "github.com/acadash/backend/internal/infrastructure/mongo"
	"github.com/acadash/backend/internal/infrastructure/monitor"
	"github.com/acadash/backend/internal/middleware"
	"github.com/acadash/backend/internal/router"
	"github.com/acadash/backend/pkg/httpcontext"
	"github.com/acadash/backend/pkg/logger"
	"github.com/acadash/backend/repository"
	"github.com/acadash/backend/repository/memory"
	"github.com/acadash/backend/repository/mongodb"
	"github.com/acadash/backend/usecase/importer"
	taskUC "github.com/acadash/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: Mongo when configured and reachable, in-memory otherwise.
	// The selector re-probes on every repository call.
	var durable repository.TaskRepository
	var probe *monitor.Probe
	if cfg.Mongo.URI != "" {
		client, err := mongoInfra.Connect(appCtx, cfg.Mongo.URI, zapLogger)
		if err != nil {
			zapLogger.Warn("mongodb client init failed, running in-memory only", zap.Error(err))
		} else {
			defer mongoInfra.Disconnect(client, zapLogger)
			durable = mongodb.NewTaskRepository(client.Database(cfg.Mongo.Database))
			probe = monitor.New(client, cfg.Mongo.ProbeTimeout, zapLogger)
		}
	} else {
		zapLogger.Info("MONGODB_URI not set, using in-memory storage")
	}

	taskRepo := repository.NewSelector(durable, memory.NewTaskRepository(), probe, zapLogger)

	canvasClient := canvas.NewClient(cfg.Canvas.APIURL, cfg.Canvas.AccessToken, cfg.Canvas.Timeout, zapLogger)
	bridge := googlecal.NewBridge(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURI, zapLogger)

	taskUseCase := taskUC.New(taskRepo, zapLogger)
	importerService := importer.New(canvasClient, taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Canvas:   apiHandler.NewCanvasHandler(canvasClient, importerService, cfg.Canvas.APIURL, ctxAdapter, zapLogger),
		Calendar: apiHandler.NewCalendarHandler(bridge, cfg.FrontendURL, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(probe, bridge, canvasClient, ctxAdapter, zapLogger),
	}

	handler := router.WithMiddleware(
		router.New(handlers).Handler,
		middleware.CORS,
		middleware.AccessLog(zapLogger),
	)

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.Bool("canvas_configured", canvasClient.Configured()),
			zap.Bool("google_configured", bridge.Configured()),
		)
		errCh <- server.ListenAndServe(cfg.Address())
	}()

	select {
	case <-appCtx.Done():
		zapLogger.Info("shutdown signal received")
	case err := <-errCh:
		zapLogger.Error("server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Context.ShutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
