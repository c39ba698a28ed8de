// Package credscan provides the command-line interface for credscan. It
// configures subcommands (scan, rules, baseline, config), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/credscan/cmd/credscan"
//	func main() { credscan.Execute() }
package credscan
