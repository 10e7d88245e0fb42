package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/siftlint/sift/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "sift",
		Usage:   "A linter for Python source files",
		Version: version.Version(),
		Description: `sift is a fast, configurable linter for Python source files.

It checks your code for outdated idioms, needless complexity, and
common mistakes, and can fix many of them automatically.

Examples:
  sift check app.py
  sift check --fix src/
  sift check .`,
		Commands: []*cli.Command{
			checkCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
