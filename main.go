package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/lazharichir/shoecount/config"
	"github.com/lazharichir/shoecount/domain"
	"github.com/lazharichir/shoecount/domain/events"
	"github.com/lazharichir/shoecount/logger"
	"github.com/lazharichir/shoecount/server"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Config failed: %v", err)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Level(),
		OutputFile: cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		logrus.Fatalf("Logger failed: %v", err)
	}
	entry := logrus.NewEntry(log)

	entry.Info("Starting Wong Halves shoe counter...")

	registry := domain.NewRegistry(events.NewInMemoryEventStore(), entry)
	s := server.NewServer(registry, cfg.AllowedOrigin, entry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx, cfg.Addr()); err != nil {
		entry.Fatalf("Server failed: %v", err)
	}
}
