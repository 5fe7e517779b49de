// Package tui hosts the guided-lesson generation screen: topic entry,
// live progress while steps and narration are produced, and a summary
// of the finished lesson.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jesstingley17/luna-ai/internal/content"
	"github.com/jesstingley17/luna-ai/internal/ui/components"
	"github.com/jesstingley17/luna-ai/internal/ui/theme"
)

// GenerateFunc produces a guided lesson, reporting percent complete
// through progress.
type GenerateFunc func(ctx context.Context, topic string, progress func(float64)) (content.InteractiveLesson, error)

type phase int

const (
	phaseInput phase = iota
	phaseGenerating
	phaseDone
	phaseFailed
)

type progressMsg float64

type resultMsg struct {
	lesson content.InteractiveLesson
	err    error
}

// Model is the guided-lesson generation screen.
type Model struct {
	generate GenerateFunc

	phase    phase
	input    components.TextInput
	topic    string
	percent  float64
	lesson   content.InteractiveLesson
	err      error
	canceled bool

	width  int
	height int

	events chan tea.Msg
}

// NewModel creates the generation screen. draft, when non-empty,
// prefills the topic field.
func NewModel(generate GenerateFunc, draft string) Model {
	input := components.NewTextInput("What do you want to learn?", 120)
	if draft != "" {
		input.Model.SetValue(draft)
	}
	return Model{
		generate: generate,
		input:    input,
		events:   make(chan tea.Msg, 16),
	}
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if m.phase == phaseInput {
				return m.startGeneration()
			}
			if m.phase == phaseDone || m.phase == phaseFailed {
				return m, tea.Quit
			}
		case "esc":
			if m.phase == phaseInput {
				m.canceled = true
				return m, tea.Quit
			}
		}

	case progressMsg:
		m.percent = float64(msg)
		return m, m.waitForEvent()

	case resultMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
		} else {
			m.phase = phaseDone
			m.lesson = msg.lesson
			m.percent = 100
		}
		return m, nil
	}

	if m.phase == phaseInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	topic := strings.TrimSpace(m.input.Value())
	if topic == "" {
		return m, nil
	}
	m.topic = topic
	m.phase = phaseGenerating

	events := m.events
	generate := m.generate
	go func() {
		lesson, err := generate(context.Background(), topic, func(pct float64) {
			select {
			case events <- progressMsg(pct):
			default:
			}
		})
		events <- resultMsg{lesson: lesson, err: err}
	}()

	return m, m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var body string
	switch m.phase {
	case phaseInput:
		body = strings.Join([]string{
			theme.Title.Render("Guided Lesson"),
			"",
			m.input.View(),
			"",
			theme.Hint.Render("Enter to generate · Esc to cancel"),
		}, "\n")

	case phaseGenerating:
		bar := components.NewProgressBar("Generating", m.percent/100, true, min(m.width-8, 60))
		body = strings.Join([]string{
			theme.Title.Render(m.topic),
			"",
			bar.View(),
			"",
			theme.Hint.Render("Building steps, illustrations, and narration…"),
		}, "\n")

	case phaseDone:
		var steps strings.Builder
		for i, s := range m.lesson.Steps {
			steps.WriteString(fmt.Sprintf("%d. %s\n", i+1, s.Title))
		}
		body = strings.Join([]string{
			theme.Correct.Render("Lesson ready"),
			"",
			theme.Body.Render(steps.String()),
			theme.Subtitle.Render(fmt.Sprintf("%d steps · %d quiz questions", len(m.lesson.Steps), len(m.lesson.Quiz))),
			"",
			theme.Hint.Render("Enter to finish"),
		}, "\n")

	case phaseFailed:
		body = strings.Join([]string{
			theme.Incorrect.Render("Generation failed"),
			"",
			theme.Body.Render(m.err.Error()),
			"",
			theme.Hint.Render("Enter to exit"),
		}, "\n")
	}

	frame := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(body))

	v.SetContent(frame)
	return v
}

// Result returns the finished lesson, or false when generation did not
// complete.
func (m Model) Result() (content.InteractiveLesson, bool) {
	return m.lesson, m.phase == phaseDone
}

// Canceled reports whether the user quit before generation finished.
func (m Model) Canceled() bool {
	return m.canceled
}

// Topic returns the submitted topic text.
func (m Model) Topic() string {
	return m.topic
}

// Run starts the generation screen and returns the final model state.
func Run(generate GenerateFunc, draft string) (Model, error) {
	p := tea.NewProgram(NewModel(generate, draft))
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	model, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected model type %T", final)
	}
	return model, nil
}
