package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/crossclip/internal/buildinfo"
	"github.com/dmitrijs2005/crossclip/internal/client/cli"
	"github.com/dmitrijs2005/crossclip/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	app, closeFn, err := cli.Bootstrap(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer closeFn()

	app.Run(ctx, cfg.OnlineCheckInterval)
}
