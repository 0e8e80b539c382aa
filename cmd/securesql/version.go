package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	securesql "github.com/biyonik/go-secure-sql"
)

// Set via ldflags at build time.
var (
	version = securesql.Version
	commit  = "unknown"
	date    = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if len(setting.Value) >= 7 {
					commit = setting.Value[:7]
				} else {
					commit = setting.Value
				}
			case "vcs.time":
				date = setting.Value
			}
		}
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "securesql %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
