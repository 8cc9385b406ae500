package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authTestServer records the last request per path and serves canned bodies.
type authTestServer struct {
	*httptest.Server
	requests map[string]map[string]interface{}
}

func newAuthTestServer(t *testing.T, routes map[string]string) *authTestServer {
	t.Helper()
	ts := &authTestServer{requests: make(map[string]map[string]interface{})}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				var payload map[string]interface{}
				require.NoError(t, json.Unmarshal(raw, &payload))
				ts.requests[r.URL.Path] = payload
			}
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestLogin_ReportsSecurityPinGate(t *testing.T) {
	ts := newAuthTestServer(t, map[string]string{
		"/api/auth/login": `{"hasSecurityPin":true}`,
	})

	client := NewClient(ts.URL, nil, nil)
	start, err := client.Login(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.True(t, start.HasSecurityPin)
	assert.Equal(t, "asha@example.com", ts.requests["/api/auth/login"]["email"])
}

func TestVerifyLoginOTP_ExtractsTokenAndNestedRole(t *testing.T) {
	ts := newAuthTestServer(t, map[string]string{
		"/api/auth/verify-login-otp": `{"token":"jwt-abc","user":{"role":"doctor"}}`,
	})

	client := NewClient(ts.URL, nil, nil)
	result, err := client.VerifyLoginOTP(context.Background(), "asha@example.com", "482913")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", result.Token)
	assert.Equal(t, "doctor", result.Role)

	sent := ts.requests["/api/auth/verify-login-otp"]
	assert.Equal(t, "482913", sent["otp"])
}

func TestRequestOTP_NewUserFlag(t *testing.T) {
	ts := newAuthTestServer(t, map[string]string{
		"/api/auth/request-otp": `{"isNewUser":false}`,
	})

	client := NewClient(ts.URL, nil, nil)
	out, err := client.RequestOTP(context.Background(), "returning@example.com")
	require.NoError(t, err)
	assert.False(t, out.IsNewUser)
}

func TestSetupPin_FlatTokenAndRole(t *testing.T) {
	ts := newAuthTestServer(t, map[string]string{
		"/api/auth/setup-pin": `{"token":"jwt-new","role":"patient"}`,
	})

	client := NewClient(ts.URL, nil, nil)
	result, err := client.SetupPin(context.Background(), "new@example.com", "1234", "1234", true)
	require.NoError(t, err)
	assert.Equal(t, "jwt-new", result.Token)
	assert.Equal(t, "patient", result.Role)

	sent := ts.requests["/api/auth/setup-pin"]
	assert.Equal(t, true, sent["isNewUser"])
	assert.Equal(t, "1234", sent["confirmPin"])
}

func TestVerifyLoginPin_BackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"incorrect security PIN"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	err := client.VerifyLoginPin(context.Background(), "asha@example.com", "0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect security PIN")
}

func TestGoogleAuthURL(t *testing.T) {
	ts := newAuthTestServer(t, map[string]string{
		"/api/oauth/google/url": `{"url":"https://accounts.google.com/o/oauth2/auth?x=1"}`,
	})

	client := NewClient(ts.URL, nil, nil)
	url, err := client.GoogleAuthURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?x=1", url)
}

func TestUpdateBasicInfo_SendsProfilePayload(t *testing.T) {
	ts := newAuthTestServer(t, map[string]string{
		"/api/physical-health/user/profile/basic-info": `{"status":"ok"}`,
	})

	client := NewClient(ts.URL, StaticToken("jwt-abc"), nil)
	err := client.UpdateBasicInfo(context.Background(), BasicInfo{
		FirstName:   "Asha",
		LastName:    "Verma",
		DateOfBirth: "1990-04-12",
		Gender:      "female",
		Role:        "patient",
	})
	require.NoError(t, err)

	sent := ts.requests["/api/physical-health/user/profile/basic-info"]
	assert.Equal(t, "Asha", sent["firstName"])
	assert.Equal(t, "patient", sent["role"])
}
