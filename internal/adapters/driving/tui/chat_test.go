package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// mockAsker implements driving.AskService for testing.
type mockAsker struct {
	exchange domain.Exchange
	err      error
}

func (m *mockAsker) Ask(_ context.Context, question string) (domain.Exchange, error) {
	if m.err != nil {
		return domain.Exchange{}, m.err
	}
	ex := m.exchange
	ex.Question = question
	return ex, nil
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestModel_InitialView(t *testing.T) {
	m := New(&mockAsker{})

	// Before the first window size message the model is not ready.
	assert.Equal(t, "Loading...", m.View())

	m = sized(m)
	view := m.View()
	assert.Contains(t, view, "Legalis Chat")
	assert.Contains(t, view, "enter to ask")
}

func TestModel_EnterWithEmptyInputDoesNothing(t *testing.T) {
	m := sized(New(&mockAsker{}))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, updated.(Model).waiting)
}

func TestModel_EnterSubmitsQuestion(t *testing.T) {
	m := sized(New(&mockAsker{}))
	m.input.SetValue("Are digital signatures valid?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, model.waiting)
	assert.Empty(t, model.input.Value())
	require.NotEmpty(t, model.transcript)
	assert.Contains(t, model.transcript[0], "Are digital signatures valid?")
}

func TestModel_EnterIgnoredWhileWaiting(t *testing.T) {
	m := sized(New(&mockAsker{}))
	m.waiting = true
	m.input.SetValue("second question")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// A pending ask blocks new submissions; the key falls through to
	// the input component instead.
	assert.True(t, m.waiting)
	_ = cmd
}

func TestModel_AnswerAppendsToTranscript(t *testing.T) {
	m := sized(New(&mockAsker{}))
	m.waiting = true

	updated, _ := m.Update(answerMsg{exchange: domain.Exchange{
		Answer:        "They are legally recognized.",
		ContextChunks: 5,
		Model:         "gemini-2.0-flash",
	}})
	model := updated.(Model)

	assert.False(t, model.waiting)
	joined := model.renderTranscript()
	assert.Contains(t, joined, "They are legally recognized.")
	assert.Contains(t, joined, "5 excerpts")
}

func TestModel_ErrorAppendsToTranscript(t *testing.T) {
	m := sized(New(&mockAsker{}))
	m.waiting = true

	updated, _ := m.Update(answerErrMsg{err: errors.New("index unavailable")})
	model := updated.(Model)

	assert.False(t, model.waiting)
	assert.Contains(t, model.renderTranscript(), "index unavailable")
}

func TestModel_QuitKeys(t *testing.T) {
	m := sized(New(&mockAsker{}))

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyCtrlD},
		{Type: tea.KeyEsc},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, "expected quit command for %v", key)
	}
}

func TestAskCommand(t *testing.T) {
	t.Run("returns answer message", func(t *testing.T) {
		cmd := ask(&mockAsker{exchange: domain.Exchange{Answer: "yes"}}, "question")
		msg := cmd()

		answer, ok := msg.(answerMsg)
		require.True(t, ok)
		assert.Equal(t, "yes", answer.exchange.Answer)
	})

	t.Run("returns error message on failure", func(t *testing.T) {
		cmd := ask(&mockAsker{err: errors.New("boom")}, "question")
		msg := cmd()

		errMsg, ok := msg.(answerErrMsg)
		require.True(t, ok)
		assert.Contains(t, errMsg.err.Error(), "boom")
	})
}
