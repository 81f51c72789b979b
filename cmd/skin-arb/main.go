package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/you/skin-arb/internal/bot"
	"github.com/you/skin-arb/internal/config"
	"go.uber.org/zap"
)

func parseFlags() (cfgPath, logLevel string) {
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	return cfgPath, logLevel
}

func main() {
	cfgPath, logLevel := parseFlags()

	logger, err := bot.NewLogger(logLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Warn("signal received, shutting down")
		cancel()
	}()

	if err := bot.New(cfg, logger).Run(ctx); err != nil {
		logger.Fatal("skin-arb stopped", zap.Error(err))
	}
}
