package main

import (
	"context"
	"log"

	"github.com/leish-app/leish-go/internal/cli"
	"github.com/leish-app/leish-go/internal/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
