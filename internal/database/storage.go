package database

import (
	"database/sql"

	"com.martdev.kitchenrack/internal/database/category"
	"com.martdev.kitchenrack/internal/database/otp"
	"com.martdev.kitchenrack/internal/database/product"
	"com.martdev.kitchenrack/internal/database/user"
)

type Storage struct {
	Users      *user.UserStore
	Otps       *otp.OtpStore
	Categories *category.CategoryStore
	Products   *product.ProductStore
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Users:      &user.UserStore{DB: db},
		Otps:       &otp.OtpStore{DB: db},
		Categories: &category.CategoryStore{DB: db},
		Products:   &product.ProductStore{DB: db},
	}
}
