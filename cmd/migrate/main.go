package main

import (
	"log"
	"os"

	"com.martdev.kitchenrack/config"
	"com.martdev.kitchenrack/internal/database"
	"github.com/pressly/goose/v3"
)

// Applies the SQL migrations in cmd/migrate/migrations. Pass "down" to roll
// back the latest one.
func main() {
	db, err := database.NewPostgresInstance(
		config.Config.DB.Addr,
		config.Config.DB.MaxOpenConns,
		config.Config.DB.MaxIdleConns,
		config.Config.DB.MaxIdleTime,
	)
	if err != nil {
		log.Fatalf("db error - %s", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %v", err)
	}

	dir := "cmd/migrate/migrations"

	if len(os.Args) > 1 && os.Args[1] == "down" {
		if err := goose.Down(db, dir); err != nil {
			log.Fatalf("failed to roll back migration: %v", err)
		}
		return
	}

	if err := goose.Up(db, dir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
}
