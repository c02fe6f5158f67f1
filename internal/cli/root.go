package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tacogips/octavia/internal/config"
	"github.com/tacogips/octavia/internal/debug"
	"github.com/tacogips/octavia/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalProject string
)

// projectPath is the resolved project root, set before any command runs.
var projectPath string

// Output streams of the running command.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "octavia",
	Short: "Airbyte configuration as code",
	Long: `octavia renders editable YAML configurations for Airbyte sources,
destinations and connections.

Use "octavia init" to create a project, then:
  1. "octavia generate source <definition> <name>" for each source
  2. "octavia generate destination <definition> <name>" for each destination
  3. "octavia generate connection <name> --source ... --destination ..."

Generated files live under sources/, destinations/ and connections/ in the
project. Secrets are written as ${VARIABLE} placeholders.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVarP(&globalProject, FlagProject, "p", "", DescProject)

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupGlobals applies the global flags, then the project's output settings.
func setupGlobals(cmd *cobra.Command, args []string) error {
	stdout = cmd.OutOrStdout()
	stderr = cmd.ErrOrStderr()

	debug.SetOutput(stderr)
	debug.SetDebug(globalDebug)
	debug.SetNoColor(globalNoColor)

	path, err := config.ResolveProjectPath(globalProject)
	if err != nil {
		return err
	}
	projectPath = path
	debug.DebugValue("[cli] Project", projectPath)

	cfg, err := config.NewLoader().LoadOrDefault(projectPath)
	if err != nil {
		return err
	}
	if !cfg.Output.Color {
		globalNoColor = true
		debug.SetNoColor(true)
	}
	if cfg.Output.Quiet {
		globalQuiet = true
	}
	return nil
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
