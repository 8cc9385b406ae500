// Package validate performs client-side input checks before anything is sent
// over the wire. Failures surface as inline form errors; they are never fatal.
package validate

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/swasthaai/swastha-cli/internal/errors"
)

const (
	// PINLength is the number of digits in a security PIN.
	PINLength = 4
	// OTPLength is the number of digits in an emailed one-time passcode.
	OTPLength = 6
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitPattern = regexp.MustCompile(`^\d+$`)

	structValidator = validator.New(validator.WithRequiredStructEnabled())
)

// Email checks the address shape. The backend stays authoritative for
// existence.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.NewValidationError("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.NewValidationError(fmt.Sprintf("%q is not a valid email address", email))
	}
	return nil
}

// PIN checks that a security PIN is exactly PINLength digits.
func PIN(pin string) error {
	if pin == "" {
		return errors.NewValidationError("security PIN is required")
	}
	if len(pin) != PINLength || !digitPattern.MatchString(pin) {
		return errors.NewValidationError(fmt.Sprintf("security PIN must be exactly %d digits", PINLength))
	}
	return nil
}

// PINConfirmation checks the confirm field against the PIN.
func PINConfirmation(pin, confirm string) error {
	if err := PIN(pin); err != nil {
		return err
	}
	if pin != confirm {
		return errors.NewValidationError("PINs do not match")
	}
	return nil
}

// OTP checks that a one-time passcode is exactly OTPLength digits.
func OTP(otp string) error {
	if otp == "" {
		return errors.NewValidationError("OTP is required")
	}
	if len(otp) != OTPLength || !digitPattern.MatchString(otp) {
		return errors.NewValidationError(fmt.Sprintf("OTP must be exactly %d digits", OTPLength))
	}
	return nil
}

// Struct runs the tag-based validator over a payload struct and folds the
// field errors into a single validation error.
func Struct(payload interface{}) error {
	err := structValidator.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(errors.ErrCodeValidation, "validation failed", err)
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describeFieldError(fe))
	}
	return errors.NewValidationError(strings.Join(details, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
