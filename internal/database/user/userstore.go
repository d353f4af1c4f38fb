package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"com.martdev.kitchenrack/internal/util"
	"github.com/lib/pq"
)

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

type User struct {
	ID        int64
	FullName  string
	Phone     string
	Email     string
	Role      string
	CreatedAt string
}

type UserStore struct {
	DB *sql.DB
}

// CreateUser inserts a new user and fills in ID and CreatedAt. The unique
// constraints on phone and email surface as ErrorDuplicatePhone and
// ErrorDuplicateEmail, the store does not pre-check with a SELECT, so two
// concurrent registrations for the same phone race safely: exactly one wins.
func (u *UserStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (full_name, phone, email, role) VALUES ($1, $2, NULLIF($3, ''), $4) RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if user.Role == "" {
		user.Role = RoleCustomer
	}

	if err := u.DB.QueryRowContext(ctx, query, user.FullName, user.Phone, user.Email, user.Role).Scan(
		&user.ID,
		&user.CreatedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_phone_key":
				return util.ErrorDuplicatePhone
			case "users_email_key":
				return util.ErrorDuplicateEmail
			}
		}
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	return nil
}

func (u *UserStore) GetUserByPhone(ctx context.Context, phone string) (*User, error) {
	query := `
		SELECT id, full_name, phone, COALESCE(email, ''), role, created_at FROM users WHERE phone = $1
	`

	return u.getUser(ctx, query, phone)
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, full_name, phone, COALESCE(email, ''), role, created_at FROM users WHERE email = $1
	`

	return u.getUser(ctx, query, email)
}

func (u *UserStore) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT id, full_name, phone, COALESCE(email, ''), role, created_at FROM users WHERE id = $1
	`

	return u.getUser(ctx, query, userID)
}

func (u *UserStore) getUser(ctx context.Context, query string, arg any) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var user User
	if err := u.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.FullName,
		&user.Phone,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, util.ErrorNotFound
		default:
			return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
	}

	return &user, nil
}
