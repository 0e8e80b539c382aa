// Package main provides a CLI for rendering and applying securesql schema
// documents.
//
// The CLI supports:
//   - render: print the DDL statements for a YAML schema document
//   - apply: execute those statements against MySQL (or print them with --dry-run)
//   - config show: print the effective configuration
//   - version: print build information
//
// Usage:
//
//	securesql [flags] <command>
package main

func main() {
	Execute()
}
