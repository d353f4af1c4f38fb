package otp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"com.martdev.kitchenrack/internal/util"
)

type Otp struct {
	ID        int64
	UserID    int64
	Code      string
	Purpose   string
	ExpiresAt time.Time
	CreatedAt string
}

type OtpStore struct {
	DB *sql.DB
}

// Put replaces whatever code is live for (user, purpose) with the given one.
// The delete and insert run in one transaction, and the otps table carries
// UNIQUE (user_id, purpose), so two concurrent issuances can never leave two
// live rows.
func (s *OtpStore) Put(ctx context.Context, otp *Otp) error {
	return util.WithTransaction(s.DB, ctx, func(tx *sql.Tx) error {
		deleteQuery := `
			DELETE FROM otps WHERE user_id = $1 AND purpose = $2
		`

		ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
		defer cancel()

		if _, err := tx.ExecContext(ctx, deleteQuery, otp.UserID, otp.Purpose); err != nil {
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}

		insertQuery := `
			INSERT INTO otps (user_id, code, purpose, expires_at) VALUES ($1, $2, $3, $4) RETURNING id, created_at
		`

		if err := tx.QueryRowContext(ctx, insertQuery, otp.UserID, otp.Code, otp.Purpose, otp.ExpiresAt).Scan(
			&otp.ID,
			&otp.CreatedAt,
		); err != nil {
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}

		return nil
	})
}

func (s *OtpStore) Find(ctx context.Context, userID int64, purpose string) (*Otp, error) {
	query := `
		SELECT id, user_id, code, purpose, expires_at, created_at FROM otps WHERE user_id = $1 AND purpose = $2
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var otp Otp
	if err := s.DB.QueryRowContext(ctx, query, userID, purpose).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Code,
		&otp.Purpose,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, util.ErrorNotFound
		default:
			return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
	}

	return &otp, nil
}

// Delete is idempotent, deleting an absent record is not an error.
func (s *OtpStore) Delete(ctx context.Context, userID int64, purpose string) error {
	query := `
		DELETE FROM otps WHERE user_id = $1 AND purpose = $2
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if _, err := s.DB.ExecContext(ctx, query, userID, purpose); err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	return nil
}
