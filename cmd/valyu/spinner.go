package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	spinnerDelay    = 80 * time.Millisecond
	spinnerClearPad = 5 // frame, space and terminal slack
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line while a request is in flight.
// It draws nothing unless w is a terminal.
type spinner struct {
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
}

func startSpinner(w io.Writer, message string) *spinner {
	s := &spinner{w: w, message: message}
	if !isTerminal(w) {
		return s
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop()
	return s
}

func (s *spinner) loop() {
	defer close(s.done)

	style := lipgloss.NewStyle().Foreground(colorPrimary)
	ticker := time.NewTicker(spinnerDelay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", style.Render(spinnerFrames[i%len(spinnerFrames)]), s.message)
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *spinner) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", len(s.message)+spinnerClearPad)+"\r")
}

// withSpinner runs op while a spinner shows message on stderr.
// Debug output shares stderr, so debug runs skip the spinner.
func (a *app) withSpinner(message string, op func() error) error {
	if a.debug {
		return op()
	}
	s := startSpinner(a.stderr, message)
	err := op()
	s.Stop()
	return err
}
