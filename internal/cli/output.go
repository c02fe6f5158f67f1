package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tacogips/octavia/internal/app"
)

// Output styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// style renders s with st unless colors are disabled.
func style(st lipgloss.Style, s string) string {
	if globalNoColor {
		return s
	}
	return st.Render(s)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", style(successStyle, "✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", style(warningStyle, "⚠"), msg)
}

// printErrorMsg prints an error message (different from printError which takes error type)
func printErrorMsg(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", style(errorStyle, "✗"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "\n%s\n", style(headerStyle, "=== "+title+" ==="))
}

// printHint prints a dimmed follow-up suggestion
func printHint(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, style(hintStyle, msg))
}

// displayPath shows path relative to the project root when possible.
func displayPath(path string) string {
	if rel, err := filepath.Rel(projectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// printGenerateResult prints the summary of a generate workflow.
func printGenerateResult(result *app.GenerateResult) {
	verb := "Created"
	if result.Overwritten {
		verb = "Overwrote"
	}
	printSuccess(fmt.Sprintf("%s %s %s: %s", verb, result.DefinitionType, result.ResourceName,
		style(pathStyle, displayPath(result.OutputPath))))
	printHint("Edit the configuration, then store secrets in environment variables.")
}

// printInitResult prints the summary of project initialization.
func printInitResult(result *app.InitResult) {
	printHeader("octavia project")
	printInfo(fmt.Sprintf("Project: %s", style(pathStyle, result.ProjectPath)))
	for _, dir := range result.CreatedDirectories {
		printSuccess(fmt.Sprintf("Created %s/", dir))
	}
	for _, dir := range result.ExistingDirectories {
		printWarning(fmt.Sprintf("Skipped %s/ (already exists)", dir))
	}
	if result.ConfigCreated {
		printSuccess("Created octavia.yaml")
	}
	if len(result.CreatedDirectories) == 0 && !result.ConfigCreated {
		printInfo("Project already initialized, nothing to do.")
	}
}
