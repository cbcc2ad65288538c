package terminal

import (
	"os"

	"golang.org/x/term"
)

// Width returns the column count of the terminal on stdout, or a
// conventional 80 when stdout is not a terminal.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func IsTerminalFile(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
