// Package cmd provides CLI commands for the sqlfmt tool.
//
// This package implements the command-line interface for sqlfmt, a
// goimports-style formatter for SQL files. Formatting itself is handled
// entirely by pkg/sqlfmt; this package only deals with argument parsing,
// config discovery, and file I/O.
//
// # Available Commands
//
// The cmd package currently provides:
//   - fmt: Format SQL files or directory trees, to stdout or in place
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. Commands are designed
// to be composable and testable, with proper error handling.
//
// # Configuration
//
// When a sqlfmt.yaml file is present (or named via --config / SQLFMT_CONFIG),
// its settings are lowered to FormatOptions and applied to every file.
// Without one, sqlfmt.Defaults apply.
//
// # Example Usage
//
//	sqlfmt fmt query.sql          # format one file to stdout
//	sqlfmt fmt -w query.sql       # rewrite the file in place
//	sqlfmt fmt -w db/             # rewrite every .sql file under db/
//	sqlfmt --config team.yaml fmt -w db/
package cmd
