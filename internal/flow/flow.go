// Package flow implements the multi-step login and signup machines. Each flow
// is a closed set of named steps with an explicit transition table; an event
// that has no entry for the current step is rejected, so illegal transitions
// cannot happen. A step only advances after its backend call succeeds; on
// failure the flow stays put and records the error for resubmission.
package flow

import (
	"github.com/google/uuid"

	"github.com/swasthaai/swastha-cli/internal/errors"
	"github.com/swasthaai/swastha-cli/internal/session"
)

// Step is a named position in a flow.
type Step string

const (
	StepEmail   Step = "email"
	StepPin     Step = "pin"
	StepOTP     Step = "otp"
	StepProfile Step = "profile"
	StepDone    Step = "done"
)

// Event is a successful outcome of a step's backend call. The transition
// table maps (step, event) to the next step; everything else is illegal.
type Event string

const (
	// login events
	EventEmailAccepted      Event = "email-accepted"       // PIN gate ahead
	EventEmailAcceptedNoPin Event = "email-accepted-nopin" // straight to OTP
	EventPinAccepted        Event = "pin-accepted"
	EventOTPAccepted        Event = "otp-accepted"

	// signup events
	EventOTPRequested    Event = "otp-requested"
	EventOTPVerified     Event = "otp-verified"
	EventPinSetNewUser   Event = "pin-set-new-user"
	EventPinSetReturning Event = "pin-set-returning"
	EventProfileSaved    Event = "profile-saved"
)

// transitions is a state x event table. Rows absent from the table are
// unreachable for that flow.
type transitions map[Step]map[Event]Step

// machine holds the shared step-tracking mechanics of both flows.
type machine struct {
	id      string
	step    Step
	table   transitions
	lastErr error
}

func newMachine(start Step, table transitions) machine {
	return machine{
		id:    uuid.New().String(),
		step:  start,
		table: table,
	}
}

// ID returns the flow's correlation id.
func (m *machine) ID() string { return m.id }

// Step returns the current step.
func (m *machine) Step() Step { return m.step }

// Err returns the error recorded by the last failed submission, or nil.
func (m *machine) Err() error { return m.lastErr }

// advance applies event to the current step. The step is unchanged when the
// event is not in the table.
func (m *machine) advance(event Event) error {
	next, ok := m.table[m.step][event]
	if !ok {
		return errors.NewIllegalEventError(string(m.step), string(event))
	}
	m.step = next
	m.lastErr = nil
	return nil
}

// require rejects a submission made from the wrong step before any backend
// call is dispatched.
func (m *machine) require(step Step, event Event) error {
	if m.step != step {
		return errors.NewIllegalEventError(string(m.step), string(event))
	}
	return nil
}

// fail records err and keeps the current step.
func (m *machine) fail(err error) error {
	m.lastErr = err
	return err
}

// Result is the outcome of a completed flow: the stored session and the
// role-specific landing route.
type Result struct {
	Session      session.Session
	LandingRoute string
}

// LandingRoute maps an account role to its dashboard route.
func LandingRoute(role string) string {
	switch role {
	case session.RoleDoctor:
		return "/d/dashboard"
	case session.RolePatient:
		return "/u/dashboard"
	default:
		return "/"
	}
}
