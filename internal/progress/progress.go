// Package progress shows a spinner on stderr while a category is sized.
package progress

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Indicator is started before a long step and stopped before anything
// else is printed.
type Indicator interface {
	Start(label string)
	Stop()
}

// New returns a Spinner when f is a terminal and a no-op otherwise.
func New(f *os.File) Indicator {
	if !isatty.IsTerminal(f.Fd()) {
		return Noop{}
	}
	return NewSpinner(f)
}

type Noop struct{}

func (Noop) Start(string) {}
func (Noop) Stop()        {}

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

type stopMsg struct{}

type model struct {
	spinner  spinner.Model
	label    string
	quitting bool
}

func newModel(label string) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return model{spinner: sp, label: label}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.spinner.View() + " " + labelStyle.Render(m.label)
}

// Spinner runs a bubbletea program in its own goroutine. Stop blocks
// until that goroutine has exited and the line is cleared.
type Spinner struct {
	out  io.Writer
	prog *tea.Program
	done chan struct{}
}

func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

func (s *Spinner) Start(label string) {
	if s.prog != nil {
		s.Stop()
	}
	s.prog = tea.NewProgram(newModel(label),
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	s.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.prog, s.done)
}

func (s *Spinner) Stop() {
	if s.prog == nil {
		return
	}
	s.prog.Send(stopMsg{})
	<-s.done
	s.prog, s.done = nil, nil
}
