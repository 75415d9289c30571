package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/santanu2402/recallai-cli/internal/buildinfo"
	"github.com/santanu2402/recallai-cli/internal/client/cli"
	"github.com/santanu2402/recallai-cli/internal/client/config"
	"github.com/santanu2402/recallai-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
