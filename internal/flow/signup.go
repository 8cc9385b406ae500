package flow

import (
	"context"

	"github.com/swasthaai/swastha-cli/internal/api"
	"github.com/swasthaai/swastha-cli/internal/log"
	"github.com/swasthaai/swastha-cli/internal/session"
	"github.com/swasthaai/swastha-cli/internal/validate"
)

// signupTransitions: email -> otp -> pin -> profile -> done. Returning users
// already have a profile and jump from pin straight to done.
var signupTransitions = transitions{
	StepEmail: {
		EventOTPRequested: StepOTP,
	},
	StepOTP: {
		EventOTPVerified: StepPin,
	},
	StepPin: {
		EventPinSetNewUser:   StepProfile,
		EventPinSetReturning: StepDone,
	},
	StepProfile: {
		EventProfileSaved: StepDone,
	},
}

// SignupFlow walks a user through OTP signup and PIN setup. The credential is
// issued at the pin step but held pending until the terminal step, so the
// session store is written exactly once; the profile call in between
// authenticates with the pending credential.
type SignupFlow struct {
	machine

	client *api.Client
	store  *session.Store
	logger *log.Logger

	email     string
	isNewUser bool
	pending   *api.AuthResult
	result    *Result
}

// NewSignup creates a signup flow against the user backend at baseURL.
func NewSignup(baseURL string, store *session.Store, logger *log.Logger) *SignupFlow {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	f := &SignupFlow{
		machine: newMachine(StepEmail, signupTransitions),
		store:   store,
		logger:  logger,
	}
	// The flow is its own token source: the pending credential wins over the
	// session store while the profile step is outstanding.
	f.client = api.NewClient(baseURL, f, logger)
	return f
}

// Token implements api.TokenSource.
func (f *SignupFlow) Token() string {
	if f.pending != nil {
		return f.pending.Token
	}
	return f.store.Token()
}

// IsNewUser reports whether the backend saw this email for the first time.
func (f *SignupFlow) IsNewUser() bool { return f.isNewUser }

// Done reports whether the flow reached its terminal step.
func (f *SignupFlow) Done() bool { return f.step == StepDone }

// Result returns the stored session and landing route once the flow is done.
func (f *SignupFlow) Result() *Result { return f.result }

// SubmitEmail requests the signup OTP.
func (f *SignupFlow) SubmitEmail(ctx context.Context, email string) error {
	if err := f.require(StepEmail, EventOTPRequested); err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return f.fail(err)
	}

	out, err := f.client.RequestOTP(ctx, email)
	if err != nil {
		return f.fail(err)
	}

	f.email = email
	f.isNewUser = out.IsNewUser
	return f.advance(EventOTPRequested)
}

// SubmitOTP confirms possession of the emailed code.
func (f *SignupFlow) SubmitOTP(ctx context.Context, otp string) error {
	if err := f.require(StepOTP, EventOTPVerified); err != nil {
		return err
	}
	if err := validate.OTP(otp); err != nil {
		return f.fail(err)
	}

	if _, err := f.client.VerifyOTP(ctx, f.email, otp); err != nil {
		return f.fail(err)
	}
	return f.advance(EventOTPVerified)
}

// SubmitPin sets the security PIN and receives the credential. New users go
// on to profile completion; returning users are done.
func (f *SignupFlow) SubmitPin(ctx context.Context, pin, confirm string) error {
	if err := f.require(StepPin, EventPinSetNewUser); err != nil {
		return err
	}
	if err := validate.PINConfirmation(pin, confirm); err != nil {
		return f.fail(err)
	}

	auth, err := f.client.SetupPin(ctx, f.email, pin, confirm, f.isNewUser)
	if err != nil {
		return f.fail(err)
	}
	f.pending = auth

	if f.isNewUser {
		return f.advance(EventPinSetNewUser)
	}
	if err := f.advance(EventPinSetReturning); err != nil {
		return err
	}
	f.finish()
	return nil
}

// SubmitProfile completes basic info for a new account and finishes the flow.
func (f *SignupFlow) SubmitProfile(ctx context.Context, info api.BasicInfo) error {
	if err := f.require(StepProfile, EventProfileSaved); err != nil {
		return err
	}
	if err := validate.Struct(info); err != nil {
		return f.fail(err)
	}

	if err := f.client.UpdateBasicInfo(ctx, info); err != nil {
		return f.fail(err)
	}

	if err := f.advance(EventProfileSaved); err != nil {
		return err
	}
	f.finish()
	return nil
}

// finish performs the one-time terminal side effect.
func (f *SignupFlow) finish() {
	sess := session.Session{Token: f.pending.Token, Role: f.pending.Role}
	f.store.SetSession(sess)
	f.result = &Result{Session: sess, LandingRoute: LandingRoute(f.pending.Role)}
	f.pending = nil
	f.logger.Info("signup complete", "flow_id", f.id, "role", sess.Role)
}
