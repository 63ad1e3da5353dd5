package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/gomlx/types/xslices"

	"github.com/gomlx/phonetok/cleaner"
	"github.com/gomlx/phonetok/tokenizer"
)

type uiModel struct {
	textarea  textarea.Model
	viewport  viewport.Model
	submitted bool
	tokenizer *tokenizer.CharPhoneTokenizer
	cleaner   *cleaner.Cleaner
	err       error
}

func newUIModel() *uiModel {
	ta := textarea.New()
	ta.Placeholder = "Transcript line:"
	ta.Focus()

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Margin(1, 2).
		Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("99"))

	return &uiModel{
		textarea:  ta,
		viewport:  vp,
		tokenizer: BuildTokenizer(),
		cleaner:   BuildCleaner(),
	}
}

func (m *uiModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd  tea.Cmd
		vpCmd  tea.Cmd
		cmds   []tea.Cmd
		resize bool
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc:
			return m, tea.Quit
		case msg.Type == tea.KeyCtrlL:
			m.textarea.Reset()

		case msg.Type == tea.KeyCtrlD && !m.submitted: // Ctrl+D to tokenize
			m.submitted = true
			rendered, err := m.Tokenize()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.viewport.SetContent(rendered)
			m.textarea.Blur()

		case m.submitted && msg.Type == tea.KeyEnter: // Enter while submitted to edit
			m.submitted = false
			m.textarea.Focus()
		}

	case tea.WindowSizeMsg:
		resize = true
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3 // Account for textarea and margins
		m.textarea.SetWidth(msg.Width - 4) // Account for textarea margins
		m.textarea.SetHeight(msg.Height - 8)
	}

	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	if resize {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(append(cmds, taCmd)...)
}

// Tokenize runs the configured tokenizer over the typed line and renders
// both token streams.
func (m *uiModel) Tokenize() (string, error) {
	line := m.cleaner.Clean(m.textarea.Value())
	pair, err := m.tokenizer.TokenizePair(line)
	if err != nil {
		return "", err
	}
	bracket := func(token string) string { return "[" + token + "]" }
	return fmt.Sprintf("char:  %s\nphone: %s",
		strings.Join(xslices.Map(pair.Char, bracket), " "),
		strings.Join(xslices.Map(pair.Phone, bracket), " ")), nil
}

func (m *uiModel) View() string {
	if m.submitted {
		return fmt.Sprintf("\n%s\n\nPress Enter to edit...", m.viewport.View())
	}

	return fmt.Sprintf(
		"\n%s\n\n"+
			"\t• Ctrl+C or ESC to quit;\n"+
			"\t• Ctrl+D to tokenize;\n"+
			"\t• Ctrl+L to clear the line.\n",
		m.textarea.View(),
	)
}
