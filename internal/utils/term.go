package utils

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var ANSI_RESET_SEQUENCE = []byte(termenv.CSI + termenv.ResetSeq + "m")

func GetFullColorSequence(color termenv.Color, bg bool) []byte {
	var b = []byte(termenv.CSI)
	b = append(b, []byte(color.Sequence(bg))...)
	b = append(b, 'm')
	return b
}

// Colorize wraps s between the sequence of color and a reset sequence.
func Colorize(s string, color termenv.Color) string {
	return string(GetFullColorSequence(color, false)) + s + string(ANSI_RESET_SEQUENCE)
}

// IsTerminal reports whether v is an *os.File connected to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
