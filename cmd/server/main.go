package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/corpchat/internal/buildinfo"
	"github.com/dmitrijs2005/corpchat/internal/server"
	"github.com/dmitrijs2005/corpchat/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
