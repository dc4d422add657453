package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"law_office_v1/internal/middleware"
	"law_office_v1/internal/router"
)

const shutdownTimeout = 30 * time.Second

func runServe(opts *rootOptions) error {
	app, err := bootstrap(opts.Env)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.seed(context.Background()); err != nil {
		return err
	}

	tasks := newTaskManager(app)
	if err := tasks.Start(); err != nil {
		return err
	}
	defer tasks.Stop()

	cfg := app.Config
	r := router.New(newControllers(app.Services, tasks, app.Logger), router.Options{
		Logger:         app.Logger,
		Sessions:       app.Services.Auth,
		Limiter:        middleware.NewRateLimiter(),
		SignUpInterval: cfg.Auth.SignUpInterval,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		EnableSwagger:  cfg.App.EnableSwagger,
		EnableMetrics:  cfg.App.EnableMetrics,
		OpsToken:       cfg.App.OpsToken,
	})

	return startServer(app.Logger, cfg.App.Listen, r)
}

func startServer(logger *zap.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("服务已退出")
	return nil
}
