package main

import (
	"context"
	"fmt"
	"os"

	"repair_pricing/internal/adapter/cli"
	"repair_pricing/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	defer logger.Sync()

	if err := cli.NewRootCommand(cli.OpenFromConfig).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
