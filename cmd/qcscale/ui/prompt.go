package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Validator checks prompt input; returning an error keeps the prompt
// open with the message displayed.
type Validator func(input string) error

// PromptModel is a single-line input loop that re-prompts until the
// validator accepts.
type PromptModel struct {
	input    textinput.Model
	question string
	validate Validator
	styles   Styles
	errMsg   string
	Value    string
	Canceled bool
}

// NewPrompt builds a prompt with a validator; pass nil to accept
// anything.
func NewPrompt(question string, validate Validator, styles Styles) PromptModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 24
	return PromptModel{
		input:    ti,
		question: question,
		validate: validate,
		styles:   styles,
	}
}

func (m PromptModel) Init() tea.Cmd { return textinput.Blink }

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.Canceled = true
			return m, tea.Quit
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.errMsg = err.Error()
					m.input.SetValue("")
					return m, nil
				}
			}
			m.Value = value
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.question))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.errMsg))
	}
	b.WriteString("\n")
	return b.String()
}

// Ask runs the prompt loop and returns the accepted value. Cancel is
// ok=false.
func Ask(question string, validate Validator, styles Styles) (string, bool, error) {
	p := tea.NewProgram(NewPrompt(question, validate, styles))
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("prompt failed: %w", err)
	}
	m := final.(PromptModel)
	if m.Canceled {
		return "", false, nil
	}
	return m.Value, true, nil
}

// Confirm asks a yes/no question. Cancel counts as no.
func Confirm(question string, styles Styles) (bool, error) {
	answer, ok, err := Ask(question+" [y/n]", func(in string) error {
		switch strings.ToLower(in) {
		case "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("please answer y or n")
	}, styles)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
