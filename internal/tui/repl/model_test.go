package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/mCALC/foundation/calc"
	mclog "github.com/msto63/mCALC/foundation/core/log"
	"github.com/msto63/mCALC/internal/history/store"
)

func newTestModel(t *testing.T, history store.Store) Model {
	t.Helper()
	m := New(Config{
		Engine:  calc.New(calc.Options{Logger: mclog.NewDiscard()}),
		History: history,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model)
}

// enter types input, presses Enter and feeds the resulting message back
func enter(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		return m, nil
	}

	msg := cmd()
	switch msg.(type) {
	case evalResultMsg, tokensResultMsg:
		updated, cmd = m.Update(msg)
		return updated.(Model), cmd
	}
	return m, cmd
}

func TestModel_View(t *testing.T) {
	m := New(Config{})
	assert.Equal(t, "Lade mCALC...", m.View())

	m = newTestModel(t, nil)
	view := m.View()
	assert.Contains(t, view, "mCALC")
	assert.Contains(t, view, "Auswertungen: 0")
}

func TestModel_Evaluate(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = enter(t, m, "2 + 3 * 4")
	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, LineResult, lines[0].Kind)
	assert.Equal(t, "2 + 3 * 4", lines[0].Expression)
	assert.Equal(t, "14", lines[0].Text)
	assert.Equal(t, "(2 + (3 * 4))", lines[0].Tree)
	assert.Equal(t, "", m.input.Value())
}

func TestModel_EvaluateError(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = enter(t, m, "5+")
	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, LineError, lines[0].Kind)
	assert.Contains(t, lines[0].Text, "unexpected end of input")
	assert.Equal(t, "  ^", lines[0].Marker)
	assert.Contains(t, m.View(), "Fehler: 1")
}

func TestModel_NonFinite(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = enter(t, m, "1/0")
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, "+Inf", m.Lines()[0].Text)
}

func TestModel_RecordsHistory(t *testing.T) {
	history := store.NewMemoryStore()
	m := newTestModel(t, history)

	m, _ = enter(t, m, "1+1")
	m, _ = enter(t, m, "#")

	entries, err := history.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "#", entries[0].Expression)
	assert.Equal(t, "UNKNOWN_CHARACTER", entries[0].ErrorCode)
	assert.Equal(t, 2.0, entries[1].Result)
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = enter(t, m, ":tree")
	assert.True(t, m.ShowTree())

	m, _ = enter(t, m, ":help")
	last := m.Lines()[len(m.Lines())-1]
	assert.Equal(t, LineSystem, last.Kind)
	assert.Contains(t, last.Text, ":tokens")

	m, _ = enter(t, m, ":tokens HH")
	last = m.Lines()[len(m.Lines())-1]
	assert.Contains(t, last.Text, `Identifier("HH")`)
	assert.Contains(t, last.Text, "EOF")

	m, _ = enter(t, m, ":nope")
	last = m.Lines()[len(m.Lines())-1]
	assert.True(t, strings.HasPrefix(last.Text, "Unbekannter Befehl"))

	m, _ = enter(t, m, ":clear")
	assert.Empty(t, m.Lines())
}

func TestModel_Quit(t *testing.T) {
	for _, input := range []string{":quit", ":q", "exit"} {
		t.Run(input, func(t *testing.T) {
			m := newTestModel(t, nil)
			_, cmd := enter(t, m, input)
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok)
		})
	}

	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_InputHistory(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = enter(t, m, "1+1")
	m, _ = enter(t, m, "2+2")

	up := func(m Model) Model {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		return updated.(Model)
	}
	down := func(m Model) Model {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		return updated.(Model)
	}

	m.input.SetValue("3")
	m = up(m)
	assert.Equal(t, "2+2", m.input.Value())
	m = up(m)
	assert.Equal(t, "1+1", m.input.Value())
	m = up(m)
	assert.Equal(t, "1+1", m.input.Value())
	m = down(m)
	assert.Equal(t, "2+2", m.input.Value())
	m = down(m)
	assert.Equal(t, "3", m.input.Value())
}

func TestModel_ClearKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = enter(t, m, "1")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	assert.True(t, m.ShowTree())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	assert.Empty(t, m.Lines())
}

func TestCaret(t *testing.T) {
	engine := calc.New(calc.Options{Logger: mclog.NewDiscard()})

	_, err := engine.Evaluate(context.Background(), "1 + ä")
	require.Error(t, err)
	assert.Equal(t, "    ^", caret("1 + ä", err))

	assert.Equal(t, "", caret("x", assert.AnError))
}

// failingStore rejects every write
type failingStore struct {
	*store.MemoryStore
}

func (failingStore) Record(context.Context, *store.Entry) error {
	return errors.New("disk full")
}

func TestModel_HistoryWriteFailure(t *testing.T) {
	m := newTestModel(t, failingStore{store.NewMemoryStore()})

	m, _ = enter(t, m, "6 * 7")
	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, LineResult, lines[0].Kind)
	assert.Equal(t, "42", lines[0].Text)
	assert.Equal(t, LineSystem, lines[1].Kind)
	assert.Contains(t, lines[1].Text, "Verlauf konnte nicht gespeichert werden")
	assert.Contains(t, lines[1].Text, "disk full")
}
