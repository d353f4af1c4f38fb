package sms

import (
	"context"
	"errors"
)

var ErrDeliveryFailed = errors.New("sms delivery failed")

// Sender delivers a rendered message to a phone number. Delivery is
// best-effort from the auth flows' point of view, a failed send must not
// abort registration or login.
type Sender interface {
	Send(ctx context.Context, message, phoneNumber string) error
}
