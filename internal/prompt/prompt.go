// Package prompt provides the yes/no confirmation step that guards every
// destructive action.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a confirmation is needed but there is
// no terminal to ask on.
var ErrNotInteractive = errors.New("confirmation required: rerun with --yes or from a terminal")

// Confirmer asks the user to approve one step. A false answer is not an error.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(message string) (bool, error)

func (f ConfirmFunc) Confirm(message string) (bool, error) { return f(message) }

// Always approves every step without asking (--yes, or already-confirmed UI flows).
var Always Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Never declines every step.
var Never Confirmer = ConfirmFunc(func(string) (bool, error) { return false, nil })

// Terminal asks on out and reads a y/N answer from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Confirm(message string) (bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s [y/N] ", message); err != nil {
		return false, err
	}
	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ForStdio picks the confirmer for a CLI run: Always when assumeYes is set,
// a Terminal on stdin/stdout when stdin is a terminal, otherwise one that
// refuses with ErrNotInteractive.
func ForStdio(assumeYes bool, out io.Writer) Confirmer {
	if assumeYes {
		return Always
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTerminal(os.Stdin, out)
	}
	return ConfirmFunc(func(string) (bool, error) { return false, ErrNotInteractive })
}

// Twice runs two sequential confirmations and reports true only when both
// are approved. The second question is not asked if the first is declined.
func Twice(c Confirmer, first, second string) (bool, error) {
	ok, err := c.Confirm(first)
	if err != nil || !ok {
		return false, err
	}
	return c.Confirm(second)
}
