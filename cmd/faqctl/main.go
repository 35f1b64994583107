// Command faqctl runs FAQ searches offline and manages the catalog in Valkey/Redis.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/faqsearch/internal/logger"
	"github.com/kailas-cloud/faqsearch/internal/version"
)

const loggerKey = "logger"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	fileFlag := &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to the FAQ JSON file",
		Value:   "data/faqs.json",
	}

	return &cli.App{
		Name:    "faqctl",
		Usage:   "FAQ search operator tool",
		Version: version.Version + " (" + version.Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		After: func(c *cli.Context) error {
			_ = loggerFrom(c).Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Search a catalog file and print the outcome as JSON",
				ArgsUsage: "<text...>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					fileFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   3,
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Check that a catalog file parses and has unique ids",
				Action: validateCommand,
				Flags:  []cli.Flag{fileFlag},
			},
			{
				Name:   "seed",
				Usage:  "Write a catalog file into Valkey/Redis",
				Action: seedCommand,
				Flags: []cli.Flag{
					fileFlag,
					&cli.StringSliceFlag{
						Name:     "addr",
						Aliases:  []string{"a"},
						Usage:    "Valkey/Redis address (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "Valkey/Redis password",
						EnvVars: []string{"FAQSEARCH_DB_PASSWORD"},
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Key holding the catalog",
						Value: "faqsearch:faqs",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the database",
						Value: defaultSeedTimeout,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	logger, err := logpkg.NewLogger("local", c.String("log-level"))
	if err != nil {
		return err
	}
	c.App.Metadata = map[string]any{loggerKey: logger}
	return nil
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if l, ok := c.App.Metadata[loggerKey].(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
