package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portview/internal/config"
	"portview/internal/gateway/coinswitch"
	"portview/internal/logger"
	"portview/internal/portfolio"
	"portview/internal/store/audit"
	transporthttp "portview/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("PORTVIEW_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	logger.SetLevel(cfg.App.LogLevel)
	if err := config.Watch(cfgPath, func(next *config.Config) {
		logger.SetLevel(next.App.LogLevel)
		logger.Infof("config reloaded, log level now %s", next.App.LogLevel)
	}); err != nil {
		logger.Warnf("config watch disabled: %v", err)
	}

	client, err := coinswitch.NewClient(coinswitch.Config{
		BaseURL:            cfg.CoinSwitch.BaseURL,
		HTTPTimeout:        time.Duration(cfg.CoinSwitch.TimeoutSeconds) * time.Second,
		MaxTradePages:      cfg.CoinSwitch.MaxTradePages,
		InsecureSkipVerify: cfg.CoinSwitch.InsecureSkipVerify,
	})
	if err != nil {
		log.Fatalf("building coinswitch client failed: %v", err)
	}

	var auditStore *audit.Store
	if cfg.Audit.Enabled {
		auditStore, err = audit.Open(cfg.Audit.DBPath)
		if err != nil {
			log.Fatalf("opening audit store failed: %v", err)
		}
		defer auditStore.Close()
		client.SetAuditRecorder(auditStore)
	}

	svc, err := portfolio.NewService(client, client)
	if err != nil {
		log.Fatalf("building portfolio service failed: %v", err)
	}

	server, err := transporthttp.NewServer(transporthttp.ServerConfig{
		Addr:           cfg.App.HTTPAddr,
		Portfolio:      svc,
		Gateway:        client,
		Audit:          auditStore,
		RequestTimeout: time.Duration(cfg.App.RequestTimeoutSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("building http server failed: %v", err)
	}
	logger.Infof("portview starting (env=%s)", cfg.App.Env)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
