package dbmigrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Run applies a goose command. An empty migrationsDir uses the SQL files
// embedded in the binary.
func Run(ctx context.Context, command string, dbURL string, migrationsDir string) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is empty")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	fsys, dir := migrationSource(migrationsDir)
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	return nil
}

func migrationSource(migrationsDir string) (fs.FS, string) {
	if migrationsDir == "" {
		return migrations.FS, "."
	}
	return os.DirFS(migrationsDir), "."
}
