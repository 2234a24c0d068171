package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), getVersionString())
		},
	}
}

func getVersionString() string {
	var details []string

	runtimeInfo, ok := debug.ReadBuildInfo()
	if ok {
		details = append(details, fmt.Sprintf("go: %s", runtimeInfo.GoVersion))

		dirty := false
		for _, setting := range runtimeInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "" {
					commit = setting.Value
				}
			case "vcs.time":
				if date == "" {
					date = setting.Value
				}
			case "vcs.modified":
				dirty = setting.Value == "true"
			}
		}
		if dirty && commit != "" && !strings.HasSuffix(commit, "-dirty") {
			commit += "-dirty"
		}
	} else {
		details = append(details, "go: unknown")
	}

	if commit != "" {
		details = append(details, fmt.Sprintf("commit: %s", commit))
	}
	if date != "" {
		details = append(details, fmt.Sprintf("built: %s", date))
	}
	return fmt.Sprintf("%s (%s)", version, strings.Join(details, ", "))
}
