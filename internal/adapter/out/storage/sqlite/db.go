package sqlite

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Open connects to the SQLite database file, creating it if needed.
// Foreign key enforcement is switched on for every connection so that
// comments cannot reference a missing post.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	return db, nil
}

// Migrate brings the schema up to the latest version.
func Migrate(db *sqlx.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Reset destroys and recreates both tables. This is the schema reset behind
// the init-db command; all posts and comments are lost.
func Reset(db *sqlx.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.DownTo(db.DB, "migrations", 0); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func setupGoose() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
