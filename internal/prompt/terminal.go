package prompt

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether prompts written for input can be answered by an operator.
// Readers that are not files are treated as interactive; files must be terminals.
func IsInteractive(input io.Reader) bool {
	if input == nil {
		return false
	}
	file, isFile := input.(*os.File)
	if !isFile {
		return true
	}
	return term.IsTerminal(int(file.Fd()))
}
