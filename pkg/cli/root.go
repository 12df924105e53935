// Package cli implements the bmad-tools command line interface.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cliVersion string

var settingsPath string

var rootCmd = &cobra.Command{
	Use:   "bmad-tools",
	Short: "bmad-tools invokes agent tools across local, remote and MCP transports",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "c", "bmad-settings.yaml", "the path to the settings file")
}

func Execute(version string) {
	if version == "" {
		cliVersion = getDevVersion().String()
	} else {
		cliVersion = version
	}

	// A .env beside the process may carry BMAD_* overrides; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type devVersion struct {
	commit               string
	hasUncommitedChanges bool
}

func (dv devVersion) String() string {
	if dv.hasUncommitedChanges {
		return fmt.Sprintf("development@%s+uncommitedChanges", dv.commit)
	}
	return fmt.Sprintf("development@%s", dv.commit)
}

func getDevVersion() devVersion {
	dv := devVersion{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if len(setting.Value) >= 7 {
					dv.commit = setting.Value[:7]
				} else {
					dv.commit = setting.Value
				}
			case "vcs.modified":
				dv.hasUncommitedChanges = setting.Value == "true"
			}
		}
	}

	return dv
}
