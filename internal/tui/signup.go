package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/swasthaai/swastha-cli/internal/api"
	"github.com/swasthaai/swastha-cli/internal/flow"
	"github.com/swasthaai/swastha-cli/internal/session"
	"github.com/swasthaai/swastha-cli/internal/validate"
)

// SignupModel drives a SignupFlow with one huh form per step. The profile
// step renders a multi-field form; every other step is a single input.
type SignupModel struct {
	flow *flow.SignupFlow
	form *huh.Form

	email      string
	otp        string
	pin        string
	confirmPin string
	profile    api.BasicInfo

	submitting bool
	quitting   bool
	err        error
	width      int
	height     int
}

// NewSignupModel creates the signup TUI model positioned at the email step.
func NewSignupModel(f *flow.SignupFlow) *SignupModel {
	m := &SignupModel{flow: f}
	m.form = m.stepForm()
	return m
}

func (m *SignupModel) stepForm() *huh.Form {
	title := fmt.Sprintf("Sign up — step: %s", m.flow.Step())

	switch m.flow.Step() {
	case flow.StepEmail:
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email address").
				Description("We'll send a one-time passcode to this address.").
				Value(&m.email).
				Validate(func(s string) error {
					if err := validate.Email(s); err != nil {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
		).Title(title).Description(helpText))

	case flow.StepOTP:
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Key("otp").
				Title("One-time passcode").
				Description("Enter the code we emailed you.").
				Value(&m.otp).
				Validate(func(s string) error {
					if err := validate.OTP(s); err != nil {
						return fmt.Errorf("OTP must be %d digits", validate.OTPLength)
					}
					return nil
				}),
		).Title(title).Description(helpText))

	case flow.StepPin:
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Key("pin").
				Title("Choose a security PIN").
				EchoMode(huh.EchoModePassword).
				Value(&m.pin).
				Validate(func(s string) error {
					if err := validate.PIN(s); err != nil {
						return fmt.Errorf("PIN must be %d digits", validate.PINLength)
					}
					return nil
				}),
			huh.NewInput().
				Key("confirm").
				Title("Confirm PIN").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirmPin),
		).Title(title).Description(helpText))

	case flow.StepProfile:
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Key("firstName").
				Title("First name").
				Value(&m.profile.FirstName),
			huh.NewInput().
				Key("lastName").
				Title("Last name").
				Value(&m.profile.LastName),
			huh.NewInput().
				Key("dateOfBirth").
				Title("Date of birth").
				Description("YYYY-MM-DD").
				Value(&m.profile.DateOfBirth),
			huh.NewSelect[string]().
				Key("gender").
				Title("Gender").
				Options(
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
					huh.NewOption("Other", "other"),
				).
				Value(&m.profile.Gender),
			huh.NewSelect[string]().
				Key("role").
				Title("Account type").
				Options(
					huh.NewOption("Patient", session.RolePatient),
					huh.NewOption("Doctor", session.RoleDoctor),
				).
				Value(&m.profile.Role),
		).Title(title).Description(helpText))

	default:
		return nil
	}
}

func (m *SignupModel) submitStep() tea.Cmd {
	step := m.flow.Step()
	email, otp, pin, confirm := m.email, m.otp, m.pin, m.confirmPin
	profile := m.profile
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch step {
		case flow.StepEmail:
			err = m.flow.SubmitEmail(ctx, email)
		case flow.StepOTP:
			err = m.flow.SubmitOTP(ctx, otp)
		case flow.StepPin:
			err = m.flow.SubmitPin(ctx, pin, confirm)
		case flow.StepProfile:
			err = m.flow.SubmitProfile(ctx, profile)
		}
		return submitDoneMsg{err: err}
	}
}

// Init implements tea.Model.
func (m *SignupModel) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// Update implements tea.Model.
func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (m *SignupModel) View() string {
	if m.quitting {
		return "Signup cancelled.\n"
	}

	if m.flow.Done() {
		return renderAuthDone("Account ready", m.flow.Result())
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

// RunSignup drives the signup flow to completion in the terminal.
func RunSignup(f *flow.SignupFlow) (*flow.Result, error) {
	model := NewSignupModel(f)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run TUI: %w", err)
	}

	m, ok := finalModel.(*SignupModel)
	if !ok {
		return nil, fmt.Errorf("invalid final model type")
	}
	if m.quitting && !m.flow.Done() {
		return nil, fmt.Errorf("signup cancelled")
	}
	if !m.flow.Done() {
		if m.err != nil {
			return nil, m.err
		}
		return nil, fmt.Errorf("signup not completed")
	}
	return m.flow.Result(), nil
}
