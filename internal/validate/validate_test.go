package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("a@b.com"))
	assert.NoError(t, Email("  asha.verma@example.co.in  "))

	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("a@b"))
	assert.Error(t, Email("a b@c.com"))
}

func TestPIN(t *testing.T) {
	assert.NoError(t, PIN("1234"))

	assert.Error(t, PIN(""))
	assert.Error(t, PIN("123"))
	assert.Error(t, PIN("12345"))
	assert.Error(t, PIN("12a4"))
}

func TestPINConfirmation(t *testing.T) {
	assert.NoError(t, PINConfirmation("1234", "1234"))

	err := PINConfirmation("1234", "4321")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	assert.Error(t, PINConfirmation("12", "12"), "length checked before match")
}

func TestOTP(t *testing.T) {
	assert.NoError(t, OTP("482913"))

	assert.Error(t, OTP(""))
	assert.Error(t, OTP("12345"))
	assert.Error(t, OTP("1234567"))
	assert.Error(t, OTP("48291a"))
}

func TestStruct(t *testing.T) {
	type profile struct {
		FirstName string `validate:"required"`
		Role      string `validate:"required,oneof=patient doctor"`
	}

	assert.NoError(t, Struct(profile{FirstName: "Asha", Role: "patient"}))

	err := Struct(profile{Role: "admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FirstName is required")
	assert.Contains(t, err.Error(), "Role must be one of")
}
