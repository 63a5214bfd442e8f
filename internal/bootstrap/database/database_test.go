package database

import (
	"context"
	"path/filepath"
	"testing"

	"modpanel/internal/bootstrap/config"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "central.sqlite")

	db, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", DSN: "x"}, Options{}); err == nil {
		t.Fatalf("Open() expected error for unsupported driver")
	}
}
