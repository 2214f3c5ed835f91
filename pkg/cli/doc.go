// Package cli holds the command line surface of tgops.
//
//   - cli/cmd: root, serve, exec and version commands
package cli
