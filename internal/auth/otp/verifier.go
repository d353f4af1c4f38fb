package otp

import (
	"context"
	"errors"
	"time"

	dbotp "com.martdev.kitchenrack/internal/database/otp"
	"com.martdev.kitchenrack/internal/util"
)

type OtpStorer interface {
	Find(ctx context.Context, userID int64, purpose string) (*dbotp.Otp, error)
	Delete(ctx context.Context, userID int64, purpose string) error
}

type Verifier struct {
	store OtpStorer
}

func NewVerifier(store OtpStorer) *Verifier {
	return &Verifier{store: store}
}

// Verify reports whether the submitted code matches the live record for
// (userID, purpose). A match consumes the record; every other outcome leaves
// it untouched. Expired records stay in place so a later issuance supersedes
// them instead of this path purging them.
func (v *Verifier) Verify(ctx context.Context, userID int64, purpose Purpose, code string) (bool, error) {
	record, err := v.store.Find(ctx, userID, string(purpose))
	if err != nil {
		if errors.Is(err, util.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}

	if record.Code != code {
		return false, nil
	}

	if !time.Now().Before(record.ExpiresAt) {
		return false, nil
	}

	if err := v.store.Delete(ctx, userID, string(purpose)); err != nil {
		return false, err
	}

	return true, nil
}
