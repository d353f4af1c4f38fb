package util

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrorNotFound        = errors.New("resource not found")
	ErrorDuplicatePhone  = errors.New("phone number already registered")
	ErrorDuplicateEmail  = errors.New("email already registered")
	ErrorDuplicateSlug   = errors.New("a record with that slug already exists")
	ErrorDuplicateSKU    = errors.New("a product with that SKU already exists")
	ErrorInvalidCategory = errors.New("one or more categories do not exist")
	ErrorStorage         = errors.New("storage failure")

	QueryTimeoutDuration = time.Second * 5
)

type PaginatedQuery struct {
	Limit  int `json:"limit" validate:"gte=1,lte=50"`
	Offset int `json:"offset" validate:"gte=0"`
}

func WithTransaction(db *sql.DB, ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
