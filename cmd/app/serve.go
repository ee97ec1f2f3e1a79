package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emailcrawler/config"
	"emailcrawler/internal/app/crawler"
	"emailcrawler/internal/app/handlers"
	"emailcrawler/internal/app/history"
	"emailcrawler/internal/app/renderer"
	"emailcrawler/internal/app/requester"
	"emailcrawler/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web form, history page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			return serve(loadConfig(logger), logger)
		},
	}
}

func loadConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Debug("can't find configs file. using default values", zap.Error(err))
	}
	return cfg
}

func newCrawler(cfg *config.Config, logger *zap.Logger) usecase.Crawler {
	static := requester.NewRequester(cfg.ReqTimeoutDuration(), cfg.UserAgent, logger, nil)
	rendered := renderer.NewRenderer(cfg.RenderSettleDuration(), cfg.RenderTimeoutDuration(), cfg.UserAgent, logger)
	return crawler.NewCrawler(static, rendered, logger, cfg.Depth, cfg.Concurrency)
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	store, err := history.Open(cfg, logger)
	if err != nil {
		logger.Error("can't open history store", zap.Error(err))
		return err
	}
	defer store.Close()

	cr := newCrawler(cfg, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewHandlers(cr, store, logger, cfg.HistoryLimit).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	stopCh := make(chan os.Signal, 1)                      //Канал для SIGINT и SIGTERM
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM) //Подписываемся на завершение

	sigUsr1Ch := make(chan os.Signal, 1)      //Канал для SIGUSR1
	signal.Notify(sigUsr1Ch, syscall.SIGUSR1) //Подписываемся на сигнал SIGUSR1
	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			logger.Error("server error", zap.Error(err))
			return err
		case <-stopCh:
			logger.Info("shutdown signal detected. program shutdown")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := srv.Shutdown(ctx)
			cancel()
			return err
		case <-sigUsr1Ch:
			cr.IncDefaultDepth(2) //Если пришел сигнал SigUsr1 - увеличиваем глубину по умолчанию на 2
			logMsg := fmt.Sprintf("sigusr1 detected, new value of default depth: %d", cr.DefaultDepth())
			logger.Info(logMsg)
		}
	}
}
