package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/swasthaai/swastha-cli/internal/api"
)

var (
	userMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7"))

	citationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
)

type chatMessage struct {
	fromUser  bool
	text      string
	citations []string
}

// answerMsg carries the assistant's reply back to the UI loop.
type answerMsg struct {
	answer *api.AssistantAnswer
	err    error
}

// ChatModel is the assistant conversation view: a viewport of exchanged
// messages over a textarea prompt, with a spinner while a query is in
// flight.
type ChatModel struct {
	client   *api.Client
	chatID   string
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	messages []chatMessage
	waiting  bool
	quitting bool
	err      error
	ready    bool
}

// NewChatModel creates the chat view backed by the AI microservice client.
func NewChatModel(client *api.Client) *ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask the assistant..."
	ta.Focus()
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ChatModel{
		client:   client,
		chatID:   uuid.New().String(),
		textarea: ta,
		spinner:  sp,
	}
}

// sendQuery dispatches the prompt off the UI loop.
func (m *ChatModel) sendQuery(query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.client.Query(context.Background(), query)
		return answerMsg{answer: answer, err: err}
	}
}

// Init implements tea.Model.
func (m *ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.textarea.SetWidth(msg.Width)
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			query := strings.TrimSpace(m.textarea.Value())
			if query == "" {
				return m, nil
			}
			m.messages = append(m.messages, chatMessage{fromUser: true, text: query})
			m.textarea.Reset()
			m.waiting = true
			m.err = nil
			m.refreshViewport()
			return m, tea.Batch(m.sendQuery(query), m.spinner.Tick)
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.messages = append(m.messages, chatMessage{
				fromUser:  false,
				text:      msg.answer.Answer,
				citations: msg.answer.Citations,
			})
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, taCmd, vpCmd)

	return m, tea.Batch(cmds...)
}

// refreshViewport re-renders the transcript and pins it to the bottom.
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderTranscript(m.messages))
	m.viewport.GotoBottom()
}

// renderTranscript formats the exchanged messages.
func renderTranscript(messages []chatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		if msg.fromUser {
			b.WriteString(userMsgStyle.Render("You: "))
			b.WriteString(msg.text)
		} else {
			b.WriteString(assistantMsgStyle.Render("Assistant: " + msg.text))
			if len(msg.citations) > 0 {
				b.WriteString("\n")
				b.WriteString(citationStyle.Render("Sources: " + strings.Join(msg.citations, ", ")))
			}
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// View implements tea.Model.
func (m *ChatModel) View() string {
	if m.quitting {
		return "Chat ended.\n"
	}
	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: ") + m.err.Error() + "\n")
	}
	if m.waiting {
		b.WriteString(m.spinner.View() + " Thinking...\n")
	}
	b.WriteString(m.textarea.View())
	b.WriteString("\n" + labelStyle.Render("Enter to send • Esc to quit"))
	return b.String()
}

// RunChat starts the interactive assistant conversation.
func RunChat(client *api.Client) error {
	p := tea.NewProgram(NewChatModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
