// Package prompt asks yes/no questions. Anything but an explicit yes,
// including end of input or a read error, is a no.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/lu-zhengda/macsweep/internal/log"
)

type Confirmer interface {
	Confirm(question string) bool
}

// Text reads answers line by line from an io.Reader.
type Text struct {
	in  *bufio.Reader
	out io.Writer
}

func NewText(in io.Reader, out io.Writer) *Text {
	return &Text{in: bufio.NewReader(in), out: out}
}

func (t *Text) Confirm(question string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", question)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	return IsYes(line)
}

// IsYes accepts "y" and "yes" in any case, surrounded by any whitespace.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Huh shows an interactive confirm field.
type Huh struct{}

func (Huh) Confirm(question string) bool {
	var ok bool
	field := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := field.Run(); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			log.Warn().Err(err).Msg("prompt failed")
		}
		return false
	}
	return ok
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New returns the huh confirmer on an interactive terminal unless plain is
// set, and a text confirmer on stdin/stdout otherwise.
func New(plain bool) Confirmer {
	if !plain && IsInteractive() {
		return Huh{}
	}
	return NewText(os.Stdin, os.Stdout)
}
