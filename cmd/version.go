// Package cmd contains the productctl cli and helpers to test cobra commands.
package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	short := "Print " + name + " version"
	if strings.TrimSpace(name) == "" {
		short = "Print version"
	}

	return &cobra.Command{
		Use:                   "version",
		Short:                 short,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			info := readBuildInfo()

			prefix := "version"
			if strings.TrimSpace(name) != "" {
				prefix = name + " version"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s from %s (%s)\n", prefix, info.revision(), info.timestamp(), info.goVersion)
		},
	}
}

type buildInfo struct {
	commitHash  string
	commitTS    string
	goVersion   string
	vcsModified bool
}

// revision returns the last commit hash, or @latest if the binary contains uncommitted code.
func (b buildInfo) revision() string {
	if b.vcsModified || b.commitHash == "" {
		return "@latest"
	}

	return b.commitHash
}

func (b buildInfo) timestamp() string {
	if b.vcsModified || b.commitTS == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}

	return b.commitTS
}

// readBuildInfo needs the vcs information to be available to the `go build` command.
// `go run` and `go test` do not contain that info.
func readBuildInfo() buildInfo {
	b := buildInfo{goVersion: "unknown"} //nolint:exhaustruct // filled below

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}

	b.goVersion = info.GoVersion

	for _, setting := range info.Settings { // called from a Go test info.Settings are always empty: []
		switch setting.Key {
		case "vcs.revision":
			b.commitHash = setting.Value
		case "vcs.time":
			b.commitTS = setting.Value
		case "vcs.modified":
			b.vcsModified = setting.Value == "true"
		}
	}

	return b
}
