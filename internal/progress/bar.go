package progress

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barPadding  = 2
	barMaxWidth = 60
)

var barLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type barInitMsg struct{ total int64 }

type barUpdateMsg struct{ received int64 }

type barFinishMsg struct{}

// barModel is the bubbletea model behind Bar.
type barModel struct {
	bar      progress.Model
	total    int64
	received int64
	done     bool
}

func newBarModel() barModel {
	return barModel{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barMaxWidth)),
	}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-barPadding*2-len(Status(m.total, m.total)), barMaxWidth), 10)
		return m, nil
	case barInitMsg:
		m.total = msg.total
		m.received = 0
	case barUpdateMsg:
		m.received = max(m.received, msg.received)
	case barFinishMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m barModel) View() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", barPadding))
	if m.total > 0 {
		b.WriteString(m.bar.ViewAs(float64(Percent(m.received, m.total)) / 100))
		b.WriteString(" ")
	}
	b.WriteString(barLabelStyle.Render(Status(m.received, m.total)))
	if m.done {
		b.WriteString("\n")
	}
	return b.String()
}

// Bar renders a progress bar with a bubbletea program.
type Bar struct {
	program *tea.Program
	done    chan struct{}
}

// NewBar starts a Bar drawing to out. Keyboard input is not read, so the
// program never competes with prompts for stdin.
func NewBar(out io.Writer) *Bar {
	b := &Bar{
		program: tea.NewProgram(newBarModel(), tea.WithOutput(out), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(b.done)
		_, _ = b.program.Run()
	}()
	return b
}

// Init implements Reporter.
func (b *Bar) Init(total int64) {
	b.program.Send(barInitMsg{total: total})
}

// Update implements Reporter.
func (b *Bar) Update(received int64) {
	b.program.Send(barUpdateMsg{received: received})
}

// Finish implements Reporter. It returns once the program has drawn its
// final frame.
func (b *Bar) Finish() {
	b.program.Send(barFinishMsg{})
	<-b.done
}
