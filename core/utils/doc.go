// Package utils provides small conversion helpers shared by the HTTP
// handlers and the CLI: lenient parsing of query values and flag inputs, and
// key=value metadata pairs.
package utils
