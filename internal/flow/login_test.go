package flow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthaai/swastha-cli/internal/session"
)

func newLoginBackend(t *testing.T, hasSecurityPin bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			if hasSecurityPin {
				_, _ = w.Write([]byte(`{"hasSecurityPin":true}`))
			} else {
				_, _ = w.Write([]byte(`{"hasSecurityPin":false}`))
			}
		case "/api/auth/verify-login-pin":
			_, _ = w.Write([]byte(`{}`))
		case "/api/auth/verify-login-otp":
			_, _ = w.Write([]byte(`{"token":"jwt-login","user":{"role":"patient"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLogin_SkipsPinWhenAccountHasNone(t *testing.T) {
	server := newLoginBackend(t, false)
	store := session.New(session.NewMemoryStore(), nil)
	f := NewLogin(server.URL, store, nil)

	require.Equal(t, StepEmail, f.Step())
	require.NoError(t, f.SubmitEmail(context.Background(), "a@b.com"))
	assert.Equal(t, StepOTP, f.Step(), "pin step skipped")
	assert.False(t, f.NeedsPin())
}

func TestLogin_PinGateThenOTP(t *testing.T) {
	server := newLoginBackend(t, true)
	store := session.New(session.NewMemoryStore(), nil)
	f := NewLogin(server.URL, store, nil)

	require.NoError(t, f.SubmitEmail(context.Background(), "a@b.com"))
	require.Equal(t, StepPin, f.Step())
	assert.True(t, f.NeedsPin())

	require.NoError(t, f.SubmitPin(context.Background(), "1234"))
	require.Equal(t, StepOTP, f.Step())

	require.NoError(t, f.SubmitOTP(context.Background(), "482913"))
	assert.True(t, f.Done())

	assert.Equal(t, "jwt-login", store.Token(), "session written at the terminal step")
	assert.Equal(t, session.RolePatient, store.Role())

	result := f.Result()
	require.NotNil(t, result)
	assert.Equal(t, "/u/dashboard", result.LandingRoute)
}

func TestLogin_BackendFailureKeepsStep(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"mail service down"}`))
	}))
	defer server.Close()

	store := session.New(session.NewMemoryStore(), nil)
	f := NewLogin(server.URL, store, nil)

	err := f.SubmitEmail(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.Equal(t, StepEmail, f.Step(), "step unchanged on failure")
	assert.Error(t, f.Err(), "error recorded for resubmission")
	assert.Contains(t, f.Err().Error(), "mail service down")
}

func TestLogin_ValidationFailureBeforeNetwork(t *testing.T) {
	// No backend at all: a validation failure must not dispatch.
	store := session.New(session.NewMemoryStore(), nil)
	f := NewLogin("http://127.0.0.1:1", store, nil)

	require.Error(t, f.SubmitEmail(context.Background(), "not-an-email"))
	assert.Equal(t, StepEmail, f.Step())

	// Resubmission with corrected input clears the recorded error path.
	assert.Error(t, f.Err())
}

func TestLogin_IllegalEventRejected(t *testing.T) {
	server := newLoginBackend(t, false)
	store := session.New(session.NewMemoryStore(), nil)
	f := NewLogin(server.URL, store, nil)

	// Submitting the PIN before the email step completed is unrepresentable.
	err := f.SubmitPin(context.Background(), "1234")
	require.Error(t, err)
	assert.Equal(t, StepEmail, f.Step())
	assert.Empty(t, store.Token())
}

func TestLandingRoute(t *testing.T) {
	assert.Equal(t, "/u/dashboard", LandingRoute(session.RolePatient))
	assert.Equal(t, "/d/dashboard", LandingRoute(session.RoleDoctor))
	assert.Equal(t, "/", LandingRoute("unknown"))
}
