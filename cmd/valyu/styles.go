package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Brand palette
var (
	colorPrimary      = lipgloss.Color("#4F46E5")
	colorPrimaryLight = lipgloss.Color("#818CF8")
	colorMuted        = lipgloss.Color("240")
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	cmdStyle    = lipgloss.NewStyle().Foreground(colorPrimaryLight)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// isTerminal reports whether w is a terminal.
// Anything that is not an *os.File, such as a test buffer, is not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// styler renders text with s only when the output is a terminal.
func styler(w io.Writer) func(s lipgloss.Style, text string) string {
	styled := isTerminal(w)
	return func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}
}

// renderMarkdown writes content as terminal-rendered markdown.
// Without a terminal glamour falls back to its plain style.
func renderMarkdown(w io.Writer, content string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.TrimRight(rendered, "\n")+"\n")
	return err
}
