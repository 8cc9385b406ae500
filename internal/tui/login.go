package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/swasthaai/swastha-cli/internal/flow"
	"github.com/swasthaai/swastha-cli/internal/validate"
)

// submitDoneMsg reports the outcome of a step submission.
type submitDoneMsg struct {
	err error
}

// LoginModel drives a LoginFlow with one huh form per step.
type LoginModel struct {
	flow *flow.LoginFlow
	form *huh.Form

	email string
	pin   string
	otp   string

	submitting bool
	quitting   bool
	err        error
	width      int
	height     int
}

// NewLoginModel creates the login TUI model positioned at the email step.
func NewLoginModel(f *flow.LoginFlow) *LoginModel {
	m := &LoginModel{flow: f}
	m.form = m.stepForm()
	return m
}

// stepForm builds the form for the flow's current step.
func (m *LoginModel) stepForm() *huh.Form {
	var field huh.Field

	switch m.flow.Step() {
	case flow.StepEmail:
		field = huh.NewInput().
			Key("email").
			Title("Email address").
			Description("We'll send a one-time passcode to this address.").
			Value(&m.email).
			Validate(func(s string) error {
				if err := validate.Email(s); err != nil {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			})

	case flow.StepPin:
		field = huh.NewInput().
			Key("pin").
			Title("Security PIN").
			Description("This account is protected by a security PIN.").
			EchoMode(huh.EchoModePassword).
			Value(&m.pin).
			Validate(func(s string) error {
				if err := validate.PIN(s); err != nil {
					return fmt.Errorf("PIN must be %d digits", validate.PINLength)
				}
				return nil
			})

	case flow.StepOTP:
		field = huh.NewInput().
			Key("otp").
			Title("One-time passcode").
			Description("Enter the code we emailed you.").
			Value(&m.otp).
			Validate(func(s string) error {
				if err := validate.OTP(s); err != nil {
					return fmt.Errorf("OTP must be %d digits", validate.OTPLength)
				}
				return nil
			})

	default:
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(field).
			Title(fmt.Sprintf("Log in — step: %s", m.flow.Step())).
			Description(helpText),
	)
}

// submitStep runs the current step's backend call off the UI loop.
func (m *LoginModel) submitStep() tea.Cmd {
	step := m.flow.Step()
	email, pin, otp := m.email, m.pin, m.otp
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch step {
		case flow.StepEmail:
			err = m.flow.SubmitEmail(ctx, email)
		case flow.StepPin:
			err = m.flow.SubmitPin(ctx, pin)
		case flow.StepOTP:
			err = m.flow.SubmitOTP(ctx, otp)
		}
		return submitDoneMsg{err: err}
	}
}

// Init implements tea.Model.
func (m *LoginModel) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// Update implements tea.Model.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.flow.Done() {
			return m, tea.Quit
		}

	case submitDoneMsg:
		m.submitting = false
		m.err = msg.err
		if m.flow.Done() {
			return m, nil
		}
		// Rebuild the form: a failure re-renders the same step, a success
		// renders the next one.
		m.form = m.stepForm()
		return m, m.form.Init()
	}

	if m.submitting || m.flow.Done() {
		return m, nil
	}

	if m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
			if m.form.State == huh.StateCompleted {
				m.submitting = true
				return m, m.submitStep()
			}
		}
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m *LoginModel) View() string {
	if m.quitting {
		return "Login cancelled.\n"
	}

	if m.flow.Done() {
		return renderAuthDone("Logged in", m.flow.Result())
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: ") + m.err.Error() + "\n\n")
	}
	if m.submitting {
		b.WriteString("Submitting...\n")
		return b.String()
	}
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	return b.String()
}

// renderAuthDone renders the terminal view shared by login and signup.
func renderAuthDone(verb string, result *flow.Result) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("✓ " + verb + "!"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Role: "))
	b.WriteString(valueStyle.Render(result.Session.Role))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Landing: "))
	b.WriteString(valueStyle.Render(result.LandingRoute))
	b.WriteString("\n\n")
	b.WriteString("Press any key to exit.\n")
	return b.String()
}

// RunLogin drives the login flow to completion in the terminal.
func RunLogin(f *flow.LoginFlow) (*flow.Result, error) {
	model := NewLoginModel(f)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run TUI: %w", err)
	}

	m, ok := finalModel.(*LoginModel)
	if !ok {
		return nil, fmt.Errorf("invalid final model type")
	}
	if m.quitting && !m.flow.Done() {
		return nil, fmt.Errorf("login cancelled")
	}
	if !m.flow.Done() {
		if m.err != nil {
			return nil, m.err
		}
		return nil, fmt.Errorf("login not completed")
	}
	return m.flow.Result(), nil
}
