// Package prompt reads operator input from a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNonInteractive is returned when input is required but no operator is
// available to provide it.
var ErrNonInteractive = errors.New("input required but running non-interactively")

// Prompter asks the operator a question and returns the raw answer line
// without its line terminator.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
	Interactive() bool
}

// Ensure both variants implement Prompter
var (
	_ Prompter = (*Terminal)(nil)
	_ Prompter = NonInteractive{}
)

// Terminal reads answers line by line. Reads block without a timeout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a prompter reading from in and writing questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Interactive() bool { return true }

func (t *Terminal) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if question != "" {
		if _, err := fmt.Fprint(t.out, question); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}

	line, err := t.in.ReadString('\n')
	if err != nil {
		// A final line without a newline is still an answer
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NonInteractive refuses every question.
type NonInteractive struct{}

func (NonInteractive) Interactive() bool { return false }

func (NonInteractive) Ask(_ context.Context, question string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNonInteractive, strings.TrimSpace(question))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ForStdin returns a Terminal prompter on stdin/stderr when interactive is
// true, NonInteractive otherwise.
func ForStdin(interactive bool) Prompter {
	if !interactive {
		return NonInteractive{}
	}
	return NewTerminal(os.Stdin, os.Stderr)
}
