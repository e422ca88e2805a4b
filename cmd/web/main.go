package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/loader"
	"github.com/bigredeye/gradebook/internal/web"
	zlog "github.com/bigredeye/gradebook/pkg/log"
)

func run() error {
	cfg, err := config.ParseConfig(os.Getenv("GRADEBOOK_CONFIG"))
	if err != nil {
		return err
	}

	logger := zlog.InitProd(zlog.WithFile(cfg.Log.File))
	defer zlog.Sync()

	book, _ := loader.Load(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return web.Run(ctx, cfg, book, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
