package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/tacogips/octavia/internal/app"
)

// isInteractive reports whether stdin is a terminal a prompt can read from.
var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmOverwrite asks whether an existing configuration may be replaced.
func confirmOverwrite(path string) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite it?", displayPath(path)),
		Default: false,
		Help:    "Answering yes replaces the file and discards your edits. Use --force to skip this question.",
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// overwriteConfirm returns the confirmation used by generate commands: none
// when the answer is already known or nobody can be asked.
func overwriteConfirm(force bool) app.ConfirmFunc {
	if force || globalQuiet || !isInteractive() {
		return nil
	}
	return confirmOverwrite
}
