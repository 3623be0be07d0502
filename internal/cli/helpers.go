package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	colorGood = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorWarn = color.New(color.FgYellow, color.Bold).SprintFunc()
	colorBad  = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

// mark styles a status marker when w is a terminal.
func mark(w io.Writer, style func(a ...interface{}) string, s string) string {
	if writerIsTerminal(w) {
		return style(s)
	}
	return s
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
