package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/volt/internal/buildinfo"
	"github.com/dmitrijs2005/volt/internal/cli"
	"github.com/dmitrijs2005/volt/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = app.Run(ctx)
	stop()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
