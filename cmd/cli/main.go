package main

import (
	"context"
	"log"

	"github.com/haiderzaidi/allaboutme/internal/admincli"
	"github.com/haiderzaidi/allaboutme/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := admincli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
