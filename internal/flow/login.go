package flow

import (
	"context"

	"github.com/swasthaai/swastha-cli/internal/api"
	"github.com/swasthaai/swastha-cli/internal/log"
	"github.com/swasthaai/swastha-cli/internal/session"
	"github.com/swasthaai/swastha-cli/internal/validate"
)

// loginTransitions: email -> pin -> otp -> done, with the pin step skipped
// when the account has no security PIN.
var loginTransitions = transitions{
	StepEmail: {
		EventEmailAccepted:      StepPin,
		EventEmailAcceptedNoPin: StepOTP,
	},
	StepPin: {
		EventPinAccepted: StepOTP,
	},
	StepOTP: {
		EventOTPAccepted: StepDone,
	},
}

// LoginFlow walks a user through OTP/PIN login. Construct one per attempt;
// the flow owns its backend client and writes the session exactly once, on
// reaching the terminal step.
type LoginFlow struct {
	machine

	client *api.Client
	store  *session.Store
	logger *log.Logger

	email  string
	result *Result
}

// NewLogin creates a login flow against the user backend at baseURL.
func NewLogin(baseURL string, store *session.Store, logger *log.Logger) *LoginFlow {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	f := &LoginFlow{
		machine: newMachine(StepEmail, loginTransitions),
		store:   store,
		logger:  logger,
	}
	f.client = api.NewClient(baseURL, store, logger)
	return f
}

// NeedsPin reports whether the flow is waiting on the security PIN gate.
func (f *LoginFlow) NeedsPin() bool { return f.step == StepPin }

// Done reports whether the flow reached its terminal step.
func (f *LoginFlow) Done() bool { return f.step == StepDone }

// Result returns the stored session and landing route once the flow is done.
func (f *LoginFlow) Result() *Result { return f.result }

// SubmitEmail starts login. Advances to pin or otp depending on whether the
// account has a security PIN.
func (f *LoginFlow) SubmitEmail(ctx context.Context, email string) error {
	if err := f.require(StepEmail, EventEmailAccepted); err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return f.fail(err)
	}

	start, err := f.client.Login(ctx, email)
	if err != nil {
		return f.fail(err)
	}

	f.email = email
	if start.HasSecurityPin {
		return f.advance(EventEmailAccepted)
	}
	return f.advance(EventEmailAcceptedNoPin)
}

// SubmitPin submits the security PIN gate. Success means the OTP email is on
// its way.
func (f *LoginFlow) SubmitPin(ctx context.Context, pin string) error {
	if err := f.require(StepPin, EventPinAccepted); err != nil {
		return err
	}
	if err := validate.PIN(pin); err != nil {
		return f.fail(err)
	}

	if err := f.client.VerifyLoginPin(ctx, f.email, pin); err != nil {
		return f.fail(err)
	}
	return f.advance(EventPinAccepted)
}

// SubmitOTP completes login with the emailed code. On success the session is
// written and the flow is done.
func (f *LoginFlow) SubmitOTP(ctx context.Context, otp string) error {
	if err := f.require(StepOTP, EventOTPAccepted); err != nil {
		return err
	}
	if err := validate.OTP(otp); err != nil {
		return f.fail(err)
	}

	auth, err := f.client.VerifyLoginOTP(ctx, f.email, otp)
	if err != nil {
		return f.fail(err)
	}

	if err := f.advance(EventOTPAccepted); err != nil {
		return err
	}
	f.finish(auth)
	return nil
}

// finish performs the one-time terminal side effect.
func (f *LoginFlow) finish(auth *api.AuthResult) {
	sess := session.Session{Token: auth.Token, Role: auth.Role}
	f.store.SetSession(sess)
	f.result = &Result{Session: sess, LandingRoute: LandingRoute(auth.Role)}
	f.logger.Info("login complete", "flow_id", f.id, "role", auth.Role)
}
