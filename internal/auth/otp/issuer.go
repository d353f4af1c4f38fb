package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Purpose is the enumerated reason a code was issued. It is part of the
// storage key, so at most one live code exists per (user, purpose).
type Purpose string

const (
	PurposeRegistration   Purpose = "REGISTRATION"
	PurposeLogin          Purpose = "LOGIN"
	PurposeOrderPlacement Purpose = "ORDER_PLACEMENT"
)

var ErrUnsupportedPurpose = errors.New("unsupported OTP purpose")

func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(s) {
	case PurposeRegistration, PurposeLogin, PurposeOrderPlacement:
		return Purpose(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedPurpose, s)
}

// Issued is a generated code together with its expiry and the SMS body to
// deliver it with. Persisting it is the caller's job.
type Issued struct {
	Code      string
	ExpiresAt time.Time
	Message   string
}

type Issuer struct {
	validity time.Duration
}

func NewIssuer(validityMin int) *Issuer {
	return &Issuer{validity: time.Duration(validityMin) * time.Minute}
}

func (i *Issuer) Issue(purpose Purpose) (*Issued, error) {
	var action string
	switch purpose {
	case PurposeRegistration:
		action = "registration"
	case PurposeLogin:
		action = "login"
	case PurposeOrderPlacement:
		action = "order placement"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPurpose, purpose)
	}

	code, err := randomCode()
	if err != nil {
		return nil, err
	}

	minutes := int(i.validity.Minutes())
	return &Issued{
		Code:      code,
		ExpiresAt: time.Now().Add(i.validity),
		Message: fmt.Sprintf(
			"Welcome to Kitchen Rack. Your OTP for %s is %s. This code is only valid for %d minutes.",
			action, code, minutes,
		),
	}, nil
}

// randomCode draws a uniform 6-digit code from [100000, 999999]. The range
// starts at 100000 so codes never carry a leading zero.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
