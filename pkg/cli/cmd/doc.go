// Package cmd provides the command-line interface for tgops.
//
// This package contains the root command and its subcommands:
//   - serve: run the Telegram bot and the Prometheus endpoint
//   - exec: run a single dispatch as a given identity and print the result
//   - version: print build information
package cmd
