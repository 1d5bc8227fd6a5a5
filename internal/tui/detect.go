package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results reach the user.
type OutputMode int

// Output modes.
const (
	// OutputModePlain writes undecorated text, for pipes and files.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes Lip Gloss styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

const defaultTerminalWidth = 120

func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// DetectOutputMode picks the richest mode the environment supports. plain
// forces plain text; noColor (or NO_COLOR, or TERM=dumb) caps at plain;
// otherwise a terminal on both stdin and stdout gets the interactive UI,
// and a terminal on stdout alone gets styled output.
func DetectOutputMode(plain, noColor bool) OutputMode {
	if plain || noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !IsTTY() {
		return OutputModePlain
	}
	if term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // Fd fits in int on supported platforms.
		return OutputModeInteractive
	}
	return OutputModeStyled
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// TerminalWidth returns the width of stdout, or 120 when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
	if err != nil || w <= 0 {
		return defaultTerminalWidth
	}
	return w
}
