package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/config"
	"github.com/javiermolinar/mitplan/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading job catalog: %w", err)
	}

	app := ui.NewApp(nil, c, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
