package api

import (
	"context"
)

// LoginStartResponse is the backend's answer to a login attempt for an
// email: whether a security PIN gate precedes OTP issuance.
type LoginStartResponse struct {
	HasSecurityPin bool `json:"hasSecurityPin"`
}

// OTPRequestResponse is the backend's answer to a signup OTP request.
type OTPRequestResponse struct {
	IsNewUser bool `json:"isNewUser"`
}

// AuthResult carries the credential exchange outcome: the bearer token and
// the account role.
type AuthResult struct {
	Token string
	Role  string
}

// BasicInfo is the profile payload completed at the end of signup.
type BasicInfo struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=patient doctor"`
}

// Login starts the login flow for email. The response tells the caller
// whether to collect a security PIN before the OTP.
func (c *Client) Login(ctx context.Context, email string) (*LoginStartResponse, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/login", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}

	var start LoginStartResponse
	if err := parseResponse(resp, &start); err != nil {
		return nil, err
	}
	return &start, nil
}

// VerifyLoginPin submits the security PIN gate. Success means the backend
// has emailed the OTP.
func (c *Client) VerifyLoginPin(ctx context.Context, email, securityPin string) error {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/verify-login-pin", map[string]string{
		"email":       email,
		"securityPin": securityPin,
	})
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// VerifyLoginOTP completes login with the emailed code and returns the
// issued credential.
func (c *Client) VerifyLoginOTP(ctx context.Context, email, otp string) (*AuthResult, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/verify-login-otp", map[string]string{
		"email": email,
		"otp":   otp,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return nil, err
	}
	return &AuthResult{Token: payload.Token, Role: payload.User.Role}, nil
}

// RequestOTP starts the signup flow for email. The response reports whether
// the account is new; returning users skip profile completion.
func (c *Client) RequestOTP(ctx context.Context, email string) (*OTPRequestResponse, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/request-otp", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}

	var out OTPRequestResponse
	if err := parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms possession of the signup OTP and returns the backend
// status string.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return "", err
	}
	return payload.Status, nil
}

// SetupPin sets the account's security PIN and completes the credential
// exchange for signup.
func (c *Client) SetupPin(ctx context.Context, email, securityPin, confirmPin string, isNewUser bool) (*AuthResult, error) {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/setup-pin", map[string]interface{}{
		"email":       email,
		"securityPin": securityPin,
		"confirmPin":  confirmPin,
		"isNewUser":   isNewUser,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return nil, err
	}
	return &AuthResult{Token: payload.Token, Role: payload.Role}, nil
}

// UpdateBasicInfo completes the profile after signup. Bearer authenticated.
func (c *Client) UpdateBasicInfo(ctx context.Context, info BasicInfo) error {
	resp, err := c.doRequest(ctx, "PUT", "/api/physical-health/user/profile/basic-info", info)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// GoogleAuthURL fetches the Google OAuth hand-off URL. The terminal client
// cannot complete the redirect itself; the URL is shown to the user.
func (c *Client) GoogleAuthURL(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/oauth/google/url", nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return "", err
	}
	return payload.URL, nil
}

// Logout invalidates the session server-side. Bearer authenticated. The
// local session is cleared by the caller regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, "POST", "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}
