package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/corpchat/internal/buildinfo"
	"github.com/dmitrijs2005/corpchat/internal/client/cli"
	"github.com/dmitrijs2005/corpchat/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL blocks on stdin, so a signal tears the app down from here.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		_ = app.Close()
		os.Exit(0)
	}()

	app.Run(ctx)

	if err := app.Close(); err != nil {
		log.Printf("close: %v", err)
	}
}
