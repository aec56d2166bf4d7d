package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tsub/host"
	"github.com/ardnew/tsub/lang"
	"github.com/ardnew/tsub/log"
)

const evalPrompt = "➜ "

func helpMessage() string {
	return `
: Commands (prefix with ':'):

  :help     Print this cruft
  :vars     List bound variable and function names
  :clear    Clear screen
  :quit     Exit REPL

Usage:
  Type a template to expand it; each output prints on its own line
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	host       *host.Map
	logger     log.Logger
	history    *History
	historyIdx int
	pending    string // input stashed while navigating history
	width      int
	quitting   bool
}

// Run starts the REPL with the given expression host.
func Run(
	ctx context.Context,
	m *host.Map,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(
		newModel(ctx, m, history, logger),
		tea.WithContext(ctx),
	)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	m *host.Map,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		host:       m,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(
			"Type a template or :help for commands",
		))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.historyIdx = m.history.Len()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		return m.executeInput()

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.historyIdx = m.history.Len()

	return m, cmd
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.historyIdx = m.history.Len()

	if cut, ok := strings.CutPrefix(input, ":"); ok {
		return m.executeCommand(cut)
	}

	if _, err := m.history.Write(input); err != nil {
		m.logger.Warn("history write failed", slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	echo := formatCommand(input)

	outs, err := lang.Run(m.host, input, lang.WithLogger(m.logger))
	if err != nil {
		return m, tea.Println(echo + "\n" + errorStyle.Render(err.Error()))
	}

	var b strings.Builder

	b.WriteString(echo)

	for _, s := range outs {
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(s))
	}

	return m, tea.Println(b.String())
}

func (m model) executeCommand(cmd string) (model, tea.Cmd) {
	switch strings.TrimSpace(cmd) {
	case "help":
		return m, tea.Println(hintStyle.Render(helpMessage()))

	case "vars":
		names := m.host.Names()
		if len(names) == 0 {
			return m, tea.Println(hintStyle.Render("no bindings"))
		}

		return m, tea.Println(hintStyle.Render(strings.Join(names, "  ")))

	case "clear":
		return m, tea.ClearScreen

	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	default:
		return m, tea.Println(
			errorStyle.Render("unknown command :" + cmd),
		)
	}
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx == 0 || m.history.Len() == 0 {
		return m, nil
	}

	if m.historyIdx == m.history.Len() {
		m.pending = m.input.Value()
	}

	m.historyIdx--

	line, err := m.history.GetLine(m.historyIdx)
	if err != nil {
		return m, nil
	}

	m.input.SetValue(line)
	m.input.CursorEnd()

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx >= m.history.Len() {
		return m, nil
	}

	m.historyIdx++

	if m.historyIdx == m.history.Len() {
		m.input.SetValue(m.pending)
		m.input.CursorEnd()

		return m, nil
	}

	line, err := m.history.GetLine(m.historyIdx)
	if err != nil {
		return m, nil
	}

	m.input.SetValue(line)
	m.input.CursorEnd()

	return m, nil
}
