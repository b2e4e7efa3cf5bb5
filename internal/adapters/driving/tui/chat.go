// Package tui provides an interactive chat interface for asking legal
// questions against the indexed corpus.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries a completed exchange back into the update loop.
type answerMsg struct {
	exchange domain.Exchange
}

// answerErrMsg carries a failed ask back into the update loop.
type answerErrMsg struct {
	err error
}

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	asker    driving.AskService
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []string
	waiting    bool
	ready      bool
}

// New creates a new chat model.
func New(asker driving.AskService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the indexed corpus"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		asker:    asker,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, input frame, status line
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.String() == "esc" {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.waiting = true
			m.input.SetValue("")
			m.transcript = append(m.transcript, questionStyle.Render("You: ")+question)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spinner.Tick, ask(m.asker, question))
		}

	case answerMsg:
		m.waiting = false
		m.transcript = append(m.transcript,
			answerStyle.Render("Legalis: ")+msg.exchange.Answer,
			metaStyle.Render(fmt.Sprintf("(%d excerpts, %s)", msg.exchange.ContextChunks, msg.exchange.Model)),
			"",
		)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case answerErrMsg:
		m.waiting = false
		m.transcript = append(m.transcript, errorStyle.Render("Error: "+msg.err.Error()), "")
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("Legalis Chat")
	status := metaStyle.Render("enter to ask, esc to quit")
	if m.waiting {
		status = m.spinner.View() + " thinking..."
	}

	return header + "\n" + m.viewport.View() + "\n" + inputBoxStyle.Render(m.input.View()) + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return metaStyle.Render("Ask your first question below.")
	}
	return strings.Join(m.transcript, "\n")
}

// ask runs the question through the ask service off the update loop.
func ask(asker driving.AskService, question string) tea.Cmd {
	return func() tea.Msg {
		exchange, err := asker.Ask(context.Background(), question)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{exchange: exchange}
	}
}

// Run starts the chat interface and blocks until the user quits.
func Run(asker driving.AskService) error {
	program := tea.NewProgram(New(asker), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
