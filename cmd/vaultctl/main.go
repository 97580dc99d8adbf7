package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/monacovault/vaultctl/internal/buildinfo"
	"github.com/monacovault/vaultctl/internal/client/cli"
	"github.com/monacovault/vaultctl/internal/client/config"
)

func main() {

	// A missing .env file is fine, real environment variables still apply.
	_ = godotenv.Load()

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
