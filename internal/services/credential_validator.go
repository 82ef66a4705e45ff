package services

import (
	"regexp"
	"strings"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

const maxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CredentialValidator checks raw credential payloads against the guard's
// password policy. It is a pure check: uniqueness belongs to the caller and,
// ultimately, to the storage layer's unique constraint.
type CredentialValidator struct {
	policy domain.PasswordPolicy
}

// NewCredentialValidator creates a validator for one guard's policy.
func NewCredentialValidator(policy domain.PasswordPolicy) *CredentialValidator {
	return &CredentialValidator{policy: policy}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateLogin checks the login payload shape.
func (v *CredentialValidator) ValidateLogin(email, password string) error {
	ve := &domain.ValidationError{}
	v.checkEmail(ve, email)
	if password == "" {
		ve.Add("password", "is required")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// ValidateRegistration checks the registration payload shape, including the
// password confirmation.
func (v *CredentialValidator) ValidateRegistration(in domain.CredentialInput) error {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "is required")
	}
	v.checkEmail(ve, in.Email)
	v.checkPassword(ve, in.Password, in.PasswordConfirmation)
	if ve.Empty() {
		return nil
	}
	return ve
}

// ValidateCredentials checks an email/password pair with confirmation, for
// flows that carry no display name (admin creation).
func (v *CredentialValidator) ValidateCredentials(email, password, confirmation string) error {
	ve := &domain.ValidationError{}
	v.checkEmail(ve, email)
	v.checkPassword(ve, password, confirmation)
	if ve.Empty() {
		return nil
	}
	return ve
}

// ValidateProfileUpdate checks only the fields being changed.
func (v *CredentialValidator) ValidateProfileUpdate(in domain.ProfileUpdateInput) error {
	ve := &domain.ValidationError{}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		ve.Add("name", "must not be blank")
	}
	if in.Email != nil {
		v.checkEmail(ve, *in.Email)
	}
	if in.Password != nil {
		confirmation := ""
		if in.PasswordConfirmation != nil {
			confirmation = *in.PasswordConfirmation
		}
		v.checkPassword(ve, *in.Password, confirmation)
		if in.CurrentPassword == "" {
			ve.Add("current_password", "is required")
		}
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

func (v *CredentialValidator) checkEmail(ve *domain.ValidationError, email string) {
	email = NormalizeEmail(email)
	switch {
	case email == "":
		ve.Add("email", "is required")
	case len(email) > maxEmailLength:
		ve.Add("email", "must not exceed 255 characters")
	case !emailPattern.MatchString(email):
		ve.Add("email", "must be a valid email address")
	}
}

func (v *CredentialValidator) checkPassword(ve *domain.ValidationError, password, confirmation string) {
	if password == "" {
		ve.Add("password", "is required")
		return
	}
	if len(password) < v.policy.MinLength {
		ve.Add("password", "is too short")
		return
	}
	if password != confirmation {
		ve.Add("password_confirmation", "does not match password")
	}
}
