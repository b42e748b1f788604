package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/consts"
	"github.com/pseudomuto/sqlfmt/pkg/sqlfmt"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates a CLI command for formatting SQL files. This command
// provides goimports-like functionality, allowing users to format individual
// files or entire directory trees recursively.
//
// The command supports two output modes:
//   - Stdout mode (default): Formatted SQL is written to standard output
//   - Write mode (-w flag): Files are modified in-place with formatted content
//
// Path handling:
//   - File paths: Format the specified SQL file directly
//   - Directory paths: Recursively find and format all .sql files
//   - Glob patterns: Not supported (use explicit file/directory paths)
//
// Because the formatter never parses, any file content is accepted: invalid
// SQL is re-spaced rather than rejected.
//
// Flags:
//   - -w: Write formatted results back to source files instead of stdout
//
// Examples:
//
//	# Format single file to stdout
//	sqlfmt fmt query.sql
//
//	# Format single file in-place
//	sqlfmt fmt -w query.sql
//
//	# Format all SQL files in directory tree in-place
//	sqlfmt fmt -w db/
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			path := cmd.Args().First()
			writeBack := cmd.Bool("write")

			return formatPath(path, writeBack, cmd.Writer)
		},
	}
}

// formatPath handles formatting of either a single file or directory
// recursively. It determines the input type (file vs directory) and
// dispatches to the appropriate formatting function.
func formatPath(path string, writeBack bool, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return formatDirectory(path, writeBack, writer)
	}

	return formatFile(path, writeBack, writer)
}

// formatDirectory recursively walks through a directory and formats all .sql
// files. It processes files in lexicographical order for consistent behavior
// across platforms.
func formatDirectory(dir string, writeBack bool, writer io.Writer) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := formatFile(sqlFile, writeBack, writer); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

// formatFile formats a single SQL file and either writes to stdout or back
// to the file.
func formatFile(path string, writeBack bool, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	formatted := sqlfmt.Format(string(content), nil, currentOptions)
	if formatted != "" {
		formatted += "\n"
	}

	if writeBack {
		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
	} else {
		if _, err := fmt.Fprint(writer, formatted); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to output")
		}
	}

	return nil
}
