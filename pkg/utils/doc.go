// Package utils provides small utility packages used across tgops.
//
//   - envvar: ${NAME} placeholder expansion for configuration values
//   - notify: formatted terminal messages with symbols and colors
package utils
