package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/cli"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	err = app.Run(ctx, os.Args[1:])
	_ = app.Close()
	if err != nil {
		log.Fatalf("%v", err)
	}

}
