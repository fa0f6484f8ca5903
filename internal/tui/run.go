package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	// ErrInterrupted is returned when the user presses Ctrl+C or the
	// context is cancelled while a selector is open.
	ErrInterrupted = errors.New("interrupted")
	// ErrNotTerminal is returned when an interactive prompt is needed but
	// stdin or stdout is not a terminal.
	ErrNotTerminal = errors.New("interactive selection requires a terminal")
)

// IsTerminal reports whether both r and w are attached to a terminal.
func IsTerminal(r io.Reader, w io.Writer) bool {
	in, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}
	out, ok := w.(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}

// TerminalSelector runs each Selector as an inline Bubble Tea program.
// The program owns the terminal for the selector's lifetime and restores it
// on every exit path.
type TerminalSelector struct {
	In  io.Reader
	Out io.Writer
	// Options are appended to the program options, mainly for tests.
	Options []tea.ProgramOption
}

// NewTerminalSelector returns a TerminalSelector on stdin and stderr.
func NewTerminalSelector() *TerminalSelector {
	return &TerminalSelector{In: os.Stdin, Out: os.Stderr}
}

// Select shows items and returns the chosen indices in list order. A clean
// cancel returns an empty slice and no error.
func (t *TerminalSelector) Select(ctx context.Context, title string, items []Item, mode Mode) ([]int, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if t.Options == nil && !IsTerminal(t.In, t.Out) {
		return nil, ErrNotTerminal
	}

	s := NewSelector(title, items, mode)
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	}, t.Options...)

	final, err := tea.NewProgram(s, opts...).Run()
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}
	if err != nil {
		return nil, fmt.Errorf("run selector: %w", err)
	}

	s = final.(*Selector)
	if s.Interrupted() {
		return nil, ErrInterrupted
	}
	return s.Selected(), nil
}
