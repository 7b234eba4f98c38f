package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"taskmanager/pkg/translator"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	httpmiddleware "taskmanager/internal/adapter/http/middleware"
	appservice "taskmanager/internal/app/service"
	"taskmanager/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := openDatabase(startupCtx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("failed to prepare mysql", zap.Error(err))
	}

	taskRepository := dbadapter.NewTaskRepository(db)
	taskService := appservice.NewTaskService(taskRepository)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db, cfg.AppName, cfg.AppVersion)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(
		gin.Recovery(),
		httpmiddleware.RequestID(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.CORS(cfg.CorsAllowedOrigins),
	)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("version", cfg.AppVersion))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// The pool is closed only once in-flight requests have drained.
			"task-manager": func(ctx context.Context) error {
				logger.Info("shutting down server")
				shutdownErr := server.Shutdown(ctx)
				return errors.Join(shutdownErr, db.Close())
			},
		},
	)

	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	if err := dbadapter.EnsureDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := dbadapter.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := dbadapter.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
