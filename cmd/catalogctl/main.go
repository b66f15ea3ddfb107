package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/thomasdelmas/Ecommerce-sub000/pkg/di"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := di.NewLogger(nil, log.InfoLevel)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:  "catalogctl",
		Usage: "Manage the product and user catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Commands: r.register(),
	}
}
