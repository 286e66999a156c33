package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/apolyakov/reelmark/internal/client/cli"
	"github.com/apolyakov/reelmark/internal/client/config"
	"github.com/apolyakov/reelmark/internal/flagx"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	// Flags are consumed by the config layer; everything else is the command.
	args := flagx.StripFlags(os.Args[1:])
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
