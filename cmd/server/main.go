// Command server runs the sales analytics API: it ingests the configured
// dataset, normalizes it into canonical rows, and serves filtered aggregate
// views over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"salespulse/internal/app"
	"salespulse/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (default: salespulse.yaml if present)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "runtime: %v\n", err)
		os.Exit(1)
	}
}
