package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/openmined/timecheck/internal/config"
	"github.com/openmined/timecheck/internal/healthcheck"
)

var (
	// https://github.com/muesli/termenv/blob/master/ansicolors.go
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func printResult(w io.Writer, res *healthcheck.Result, format string) error {
	if format == config.OutputJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(res.Report())
	}

	msg := res.Message()
	if colorEnabled(w) {
		if res.OK() {
			msg = green.Render(msg)
		} else {
			msg = red.Render(msg)
		}
	}

	_, err := fmt.Fprintln(w, msg)
	return err
}

// colorEnabled is true only for a terminal; piped output stays plain for
// whatever scrapes it.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
