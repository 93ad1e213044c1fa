package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the hexsim banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"  _                    _", "#34d399"},
		{" | |__   _____  _____(_)_ __ ___", "#2dd4bf"},
		{" | '_ \\ / _ \\ \\/ / __| | '_ ` _ \\", "#22d3ee"},
		{" | | | |  __/>  <\\__ \\ | | | | | |", "#38bdf8"},
		{" |_| |_|\\___/_/\\_\\___/_|_| |_| |_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
