// Package debug prints diagnostic output to stderr when --debug is set.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	output  io.Writer
)

var (
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func sink() (io.Writer, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if output != nil {
		return output, !noColor
	}
	return os.Stderr, !noColor
}

func emit(line string) {
	w, useColor := sink()
	tag, timestamp := "[DEBUG]", time.Now().Format("15:04:05.000")
	if useColor {
		tag, timestamp = tagStyle.Render(tag), timeStyle.Render(timestamp)
	}
	fmt.Fprintf(w, "%s %s %s\n", tag, timestamp, line)
}

func highlight(s string) string {
	if _, useColor := sink(); useColor {
		return keyStyle.Render(s)
	}
	return s
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...any) {
	if !IsEnabled() {
		return
	}
	emit(fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	emit(highlight("=== " + section + " ==="))
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value any) {
	if !IsEnabled() {
		return
	}
	emit(fmt.Sprintf("%s = %v", highlight(key), value))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v any) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(fmt.Sprintf("%s:\n%s", highlight(key), jsonBytes))
}

// DebugDump prints an arbitrary value tree, e.g. a flattened field list.
func DebugDump(key string, v any) {
	if !IsEnabled() {
		return
	}
	emit(fmt.Sprintf("%s:\n%s", highlight(key), strings.TrimRight(dumpConfig.Sdump(v), "\n")))
}
