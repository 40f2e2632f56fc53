package main

import (
	"log"
	"net/http"

	"catalog-admin/internal/config"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/mockapi"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	srv, err := newServer(cfg)
	if err != nil {
		logger.L().Fatal("failed to build mock api", zap.Error(err))
	}

	logger.L().Info("mock api listening",
		zap.String("addr", cfg.MockAPIAddr),
		zap.String("base_path", mockapi.BasePath),
	)
	if err := http.ListenAndServe(cfg.MockAPIAddr, srv.Handler()); err != nil {
		logger.L().Fatal("mock api stopped", zap.Error(err))
	}
}

func newServer(cfg *config.Config) (*mockapi.Server, error) {
	return mockapi.New(mockapi.Options{
		Secret:    []byte(cfg.MockAPISecret),
		TokenTTL:  cfg.MockAPITokenTTL,
		RateLimit: cfg.APIRateLimit,
		RateBurst: cfg.APIRateBurst,
	})
}
