package cli

import (
	"github.com/spf13/cobra"
	"github.com/tacogips/octavia/internal/app"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an octavia project",
	Long: `Create the sources/, destinations/ and connections/ directories and a
default octavia.yaml in the project root. Existing directories and an
existing octavia.yaml are left untouched.

Examples:
  octavia init
  octavia init --project ./airbyte-config`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	result, err := app.InitProject(cmd.Context(), app.InitOptions{
		ProjectPath: projectPath,
	})
	if err != nil {
		printErrorMsg("Init failed")
		return err
	}

	printInitResult(result)
	return nil
}
