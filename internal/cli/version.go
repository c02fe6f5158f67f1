package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tacogips/octavia/internal/config"
	"github.com/tacogips/octavia/internal/render"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the octavia build and its bundled templates",
	Long: `Print the octavia build together with the templates it renders
configuration.yaml files from and the project file it reads.

Examples:
  octavia version
  octavia version --short
  octavia version --json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build details as JSON")
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Version     string   `json:"version"`
	Commit      string   `json:"commit"`
	BuildDate   string   `json:"build_date"`
	GoVersion   string   `json:"go_version"`
	Platform    string   `json:"platform"`
	Templates   []string `json:"templates"`
	ProjectFile string   `json:"project_file"`
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version:     Version,
		Commit:      GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Templates:   []string{render.ConnectorTemplate, render.ConnectionTemplate},
		ProjectFile: config.FileName,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentVersion()

	switch {
	case versionShort:
		fmt.Fprintln(stdout, info.Version)
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	default:
		fmt.Fprintf(stdout, "%s (%s, built %s)\n",
			style(headerStyle, "octavia version "+info.Version), info.Commit, info.BuildDate)
		fmt.Fprintf(stdout, "  go:        %s %s\n", info.GoVersion, info.Platform)
		for _, name := range info.Templates {
			fmt.Fprintf(stdout, "  template:  %s\n", style(pathStyle, name))
		}
		fmt.Fprintf(stdout, "  project:   %s\n", style(pathStyle, info.ProjectFile))
	}
	return nil
}
