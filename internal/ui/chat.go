// Package ui provides the notgpt front ends: a terminal chat and a plain
// line-based prompt. Both forward each input line to a command.Dispatcher
// and show its reply.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JamesPrial/notgpt/internal/command"
)

// Greeting is the first message shown by every front end.
const Greeting = "hi, i'm notgpt,\ndo you really need me to do sth for you?"

// exitDelay keeps the goodbye on screen before the chat closes.
const exitDelay = 2 * time.Second

var (
	userBubble = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#DCF8C6")).
			Padding(0, 1)

	botBubble = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#128C7E")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	inputBar = lipgloss.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#128C7E"))
)

// RunChat starts the full-screen chat on in and out. It returns when the user
// says bye or presses ctrl+c.
func RunChat(ctx context.Context, in io.Reader, out io.Writer, d *command.Dispatcher) error {
	if !IsTTY(out) {
		return fmt.Errorf("chat requires a TTY; use -plain")
	}

	program := tea.NewProgram(newChatModel(ctx, d),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}

type message struct {
	text     string
	fromUser bool
}

type exitMsg struct{}

type chatModel struct {
	ctx        context.Context
	dispatcher *command.Dispatcher
	input      textinput.Model
	vp         viewport.Model
	messages   []message
	width      int
	ready      bool
	leaving    bool
}

func newChatModel(ctx context.Context, d *command.Dispatcher) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "tell me what to do..."
	ti.CharLimit = 512
	ti.Prompt = "> "
	ti.Focus()

	return &chatModel{
		ctx:        ctx,
		dispatcher: d,
		input:      ti,
		messages:   []message{{text: Greeting}},
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.send()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}

	case exitMsg:
		return m, tea.Quit
	}

	if m.leaving {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	if !m.ready {
		return "starting..."
	}
	return m.vp.View() + "\n" + inputBar.Width(m.width).Render(m.input.View())
}

// send runs the typed line. Blank input is ignored.
func (m *chatModel) send() tea.Cmd {
	if m.leaving {
		return nil
	}
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return nil
	}
	m.input.Reset()

	reply, quit := m.dispatcher.Handle(m.ctx, line)
	m.messages = append(m.messages, message{text: line, fromUser: true}, message{text: reply})
	m.refresh()

	if quit {
		m.leaving = true
		m.input.Blur()
		return tea.Tick(exitDelay, func(time.Time) tea.Msg { return exitMsg{} })
	}
	return nil
}

func (m *chatModel) resize(width, height int) {
	m.width = width
	vpHeight := max(3, height-3)
	if !m.ready {
		m.vp = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.vp.Width = width
		m.vp.Height = vpHeight
	}
	m.input.Width = max(10, width-4)
	m.refresh()
}

// refresh re-renders the transcript and scrolls to the newest message.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(renderTranscript(m.messages, m.width))
	m.vp.GotoBottom()
}

// renderTranscript lays out messages as chat bubbles: the user's on the
// right, notgpt's on the left.
func renderTranscript(messages []message, width int) string {
	bubbleWidth := max(20, width*3/5)

	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		text := msg.text
		if lipgloss.Width(text) > bubbleWidth {
			text = lipgloss.NewStyle().Width(bubbleWidth).Render(text)
		}

		if msg.fromUser {
			block := lipgloss.JoinVertical(lipgloss.Right, nameStyle.Render("you"), userBubble.Render(text))
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, block))
			continue
		}
		block := lipgloss.JoinVertical(lipgloss.Left, nameStyle.Render("notgpt"), botBubble.Render(text))
		blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Left, block))
	}
	return strings.Join(blocks, "\n\n")
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
