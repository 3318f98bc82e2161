// Package prompt wraps survey confirmation prompts for operations that
// would otherwise silently remove state (used by `rit prune`),
// skipping the prompt entirely on a non-TTY stdin or when the caller
// already passed --yes.
package prompt

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether stdin is an attached terminal, honoring
// RIT_NON_INTERACTIVE for tests and scripted invocations.
func IsInteractive() bool {
	if os.Getenv("RIT_NON_INTERACTIVE") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Confirm asks a yes/no question, auto-approving when assumeYes is set
// or stdin is not a terminal (the prompt would otherwise block forever
// in a script or CI run).
func Confirm(message string, assumeYes bool) (bool, error) {
	if assumeYes || !IsInteractive() {
		return true, nil
	}
	ok := false
	p := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(p, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
