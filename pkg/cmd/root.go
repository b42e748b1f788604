package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/config"
	"github.com/pseudomuto/sqlfmt/pkg/sqlfmt"
	"github.com/urfave/cli/v3"
)

// currentOptions are the format options every command applies. They start as
// sqlfmt.Defaults and are replaced by the project config when one is found.
var currentOptions = sqlfmt.Defaults

type (
	// Version carries build metadata stamped in by the release pipeline.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main sqlfmt CLI application with the given
// version and command-line arguments.
//
// The application looks for a sqlfmt.yaml config file before running any
// command. The file is optional: when absent, sqlfmt.Defaults apply. The
// lookup path comes from --config (or SQLFMT_CONFIG), defaulting to
// sqlfmt.yaml in the current directory.
//
// Example usage:
//
//	// Format a file in place with project config applied
//	err := Run(ctx, version, []string{"sqlfmt", "fmt", "-w", "query.sql"})
func Run(ctx context.Context, version Version, args []string) error {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", version.Timestamp)
	}

	app := &cli.Command{
		Name:  "sqlfmt",
		Usage: "A formatter for SQL files",
		Description: `sqlfmt pretty-prints SQL without parsing it, so partial and even
malformed statements survive formatting. It formats single files or whole
directory trees, writing to stdout or back to the source files.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlfmt config file",
				Sources: cli.EnvVars("SQLFMT_CONFIG"),
				Value:   "sqlfmt.yaml",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			path := cmd.String("config")

			if _, err := os.Stat(path); os.IsNotExist(err) {
				currentOptions = sqlfmt.Defaults
				return ctx, nil
			}

			cfg, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, errors.Wrap(err, "failed to load config")
			}

			options, err := cfg.Options()
			if err != nil {
				return ctx, errors.Wrap(err, "invalid config")
			}

			currentOptions = options
			return ctx, nil
		},
		Commands: []*cli.Command{
			fmtCmd(),
		},
	}

	return app.Run(ctx, args)
}
