package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the dynoslide ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"      _                       _ _     _      ", "#818cf8"},
		{"   __| |_   _ _ __   ___  ___| (_) __| | ___ ", "#a78bfa"},
		{"  / _` | | | | '_ \\ / _ \\/ __| | |/ _` |/ _ \\", "#c084fc"},
		{" | (_| | |_| | | | | (_) \\__ \\ | | (_| |  __/", "#e879f9"},
		{"  \\__,_|\\__, |_| |_|\\___/|___/_|_|\\__,_|\\___|", "#f472b6"},
		{"        |___/                                ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
