// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     repl
// Description: Interactive bubbletea front end for the expression engine
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mCALC/foundation/calc"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
	"github.com/msto63/mCALC/internal/history/store"
	"github.com/msto63/mCALC/pkg/core/version"
)

const (
	evalTimeout     = 5 * time.Second
	maxInputHistory = 100
)

// Config holds REPL configuration
type Config struct {
	Engine   *calc.Engine
	History  store.Store // Optional; evaluations are recorded when set
	ShowTree bool        // Show the parenthesised tree under each result
}

// Model is the bubbletea model of the REPL
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	lines    []Line

	engine   *calc.Engine
	history  store.Store
	showTree bool

	inputHistory []string
	historyIndex int // -1: not navigating
	currentInput string

	evaluations int
	failures    int

	width  int
	height int
	ready  bool
}

// New creates a new REPL model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Ausdruck eingeben, z.B. 2 + 3 * 4 (:help für Befehle)"
	ti.Prompt = PromptStyle.Render("› ")
	ti.CharLimit = 4096
	ti.Focus()

	engine := cfg.Engine
	if engine == nil {
		engine = calc.New(calc.Options{})
	}
	if engine.MaxInputLength() > 0 {
		ti.CharLimit = engine.MaxInputLength()
	}

	return Model{
		input:        ti,
		engine:       engine,
		history:      cfg.History,
		showTree:     cfg.ShowTree,
		historyIndex: -1,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Logo + subtitle
		footerHeight := 7 // Input panel + status bar + help + transcript border
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case evalResultMsg:
		m.evaluations++
		if msg.err != nil {
			m.failures++
			m.lines = append(m.lines, Line{
				Kind:       LineError,
				Expression: msg.expression,
				Text:       msg.err.Error(),
				Marker:     caret(msg.expression, msg.err),
				Timestamp:  time.Now(),
			})
		} else {
			m.lines = append(m.lines, Line{
				Kind:       LineResult,
				Expression: msg.expression,
				Text:       msg.result.ValueText(),
				Tree:       msg.result.Infix(),
				Duration:   msg.result.Duration,
				Timestamp:  time.Now(),
			})
		}
		if msg.historyErr != nil {
			m.addSystem("Verlauf konnte nicht gespeichert werden: " + msg.historyErr.Error())
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()

	case tokensResultMsg:
		if msg.err != nil {
			m.lines = append(m.lines, Line{
				Kind:       LineError,
				Expression: ":tokens " + msg.expression,
				Text:       msg.err.Error(),
				Timestamp:  time.Now(),
			})
		} else {
			m.addSystem(strings.Join(msg.lines, "\n"))
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.lines = nil
		m.updateViewportContent()
		return m, nil

	case tea.KeyCtrlT:
		m.toggleTree()
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		if input == "" {
			return m, nil
		}
		m.pushHistory(input)
		m.input.Reset()
		return m.submit(input)

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs a command or evaluates an expression
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	if !strings.HasPrefix(input, ":") {
		if input == "exit" || input == "quit" {
			return m, tea.Quit
		}
		return m, m.evaluate(input)
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(input, ":"), " ")
	switch name {
	case "q", "quit", "exit":
		return m, tea.Quit
	case "help", "hilfe":
		m.addSystem(helpText)
	case "tree", "baum":
		m.toggleTree()
	case "clear":
		m.lines = nil
	case "tokens":
		return m, m.tokenize(strings.TrimSpace(arg))
	default:
		m.addSystem(fmt.Sprintf("Unbekannter Befehl: %s (:help zeigt alle Befehle)", input))
	}

	m.updateViewportContent()
	m.viewport.GotoBottom()
	return m, nil
}

const helpText = `Befehle:
  <Ausdruck>       Ausdruck auswerten (+ - * / ohne Klammern)
  :tokens <expr>   Token-Folge anzeigen
  :tree            Baumdarstellung ein/aus (Ctrl+T)
  :clear           Verlauf leeren (Ctrl+L)
  :quit            Beenden (Ctrl+C)`

// evaluate returns a command that evaluates expression off the update loop
func (m Model) evaluate(expression string) tea.Cmd {
	engine, history := m.engine, m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
		defer cancel()

		res, err := engine.Evaluate(ctx, expression)
		msg := evalResultMsg{expression: expression, result: res, err: err}
		if history != nil {
			entry := store.NewEntry(expression)
			if err != nil {
				entry.ErrorCode = string(mcerror.GetCode(err))
				entry.ErrorMessage = err.Error()
			} else {
				entry.Result = res.Value
				entry.Tree = res.Infix()
				entry.DurationMS = float64(res.Duration.Microseconds()) / 1000
			}
			// best effort: a failed write is reported but keeps the result
			msg.historyErr = history.Record(ctx, entry)
		}

		return msg
	}
}

// tokenize returns a command that scans expression
func (m Model) tokenize(expression string) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
		defer cancel()

		tokens, err := engine.Tokenize(ctx, expression)
		if err != nil {
			return tokensResultMsg{expression: expression, err: err}
		}

		lines := make([]string, 0, len(tokens)+1)
		lines = append(lines, "Tokens für "+expression+":")
		for _, tok := range tokens {
			lines = append(lines, fmt.Sprintf("  %3d  %s", tok.Position, tok.String()))
		}
		return tokensResultMsg{expression: expression, lines: lines}
	}
}

func (m *Model) toggleTree() {
	m.showTree = !m.showTree
	state := "aus"
	if m.showTree {
		state = "an"
	}
	m.addSystem("Baumdarstellung " + state)
	m.updateViewportContent()
}

func (m *Model) addSystem(text string) {
	m.lines = append(m.lines, Line{Kind: LineSystem, Text: text, Timestamp: time.Now()})
}

func (m *Model) pushHistory(input string) {
	if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != input {
		m.inputHistory = append(m.inputHistory, input)
		if len(m.inputHistory) > maxInputHistory {
			m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
		}
	}
	m.historyIndex = -1
	m.currentInput = ""
}

// caret returns a marker line pointing at the error position, or "" when
// the error carries none
func caret(expression string, err error) string {
	pos, ok := calc.ErrorPosition(err)
	if !ok {
		return ""
	}

	runes := []rune(expression)
	if pos > len(runes) {
		pos = len(runes)
	}
	return strings.Repeat(" ", lipgloss.Width(string(runes[:pos]))) + "^"
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade mCALC..."
	}

	var b strings.Builder

	b.WriteString(LogoStyle.Render(Logo) + " " + SubHeaderStyle.Render("Arithmetischer Ausdrucksrechner v"+version.CLI))
	b.WriteString("\n\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(InputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderStatusBar renders counters and toggles
func (m Model) renderStatusBar() string {
	tree := "aus"
	if m.showTree {
		tree = "an"
	}
	hist := "aus"
	if m.history != nil {
		hist = "an"
	}

	content := fmt.Sprintf("Auswertungen: %d  Fehler: %d  Baum: %s  Historie: %s",
		m.evaluations, m.failures, tree, hist)
	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "auswerten"),
		RenderKeyHint("↑/↓", "Historie"),
		RenderKeyHint("Ctrl+T", "Baum"),
		RenderKeyHint("Ctrl+L", "leeren"),
		RenderKeyHint("Ctrl+C", "beenden"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders the transcript into the viewport
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, line := range m.lines {
		switch line.Kind {
		case LineResult:
			content.WriteString(PromptStyle.Render("› ") + ExpressionStyle.Render(line.Expression))
			content.WriteString("\n")
			content.WriteString("  = " + ResultStyle.Render(line.Text))
			if line.Duration > 0 {
				content.WriteString(DurationStyle.Render(fmt.Sprintf("  (%s)", line.Duration.Round(time.Microsecond))))
			}
			content.WriteString("\n")
			if m.showTree && line.Tree != "" {
				content.WriteString(TreeStyle.Render(line.Tree))
				content.WriteString("\n")
			}

		case LineError:
			content.WriteString(PromptStyle.Render("› ") + ExpressionStyle.Render(line.Expression))
			content.WriteString("\n")
			if line.Marker != "" {
				content.WriteString("  " + ErrorStyle.UnsetPaddingLeft().Render(line.Marker))
				content.WriteString("\n")
			}
			content.WriteString(ErrorStyle.Render("Fehler: " + line.Text))
			content.WriteString("\n")

		case LineSystem:
			content.WriteString(SystemStyle.Render(line.Text))
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
}

// Lines returns the transcript
func (m Model) Lines() []Line {
	return m.lines
}

// ShowTree reports whether trees are displayed
func (m Model) ShowTree() bool {
	return m.showTree
}

// Run starts the REPL
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
