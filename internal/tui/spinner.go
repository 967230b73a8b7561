package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// workDoneMsg is sent when the wrapped work returns
type workDoneMsg struct{}

// SpinnerModel shows a spinner next to a title until the work finishes
type SpinnerModel struct {
	title    string
	spinner  spinner.Model
	done     <-chan struct{}
	finished bool
}

// NewSpinnerModel creates a model that quits once done is closed
func NewSpinnerModel(title string, done <-chan struct{}) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return SpinnerModel{title: title, spinner: s, done: done}
}

func waitFor(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return workDoneMsg{}
	}
}

func (m SpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitFor(m.done))
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		// the process is bounded by its own timeout; only hide the spinner
		if msg.String() == "ctrl+c" {
			m.finished = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.finished {
		return ""
	}
	return m.spinner.View() + " " + ColorDim(m.title) + "\n"
}

// RunWithSpinner runs work while a spinner is shown. Without a TTY, work simply runs.
// Console output from splog is held back until the spinner is gone.
func RunWithSpinner(splog *Splog, title string, work func()) {
	if !IsTTY() {
		work()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		work()
	}()

	if splog != nil {
		splog.SetQuiet(true)
		defer splog.SetQuiet(false)
	}

	p := tea.NewProgram(NewSpinnerModel(title, done), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	_, _ = p.Run()
	<-done
}
