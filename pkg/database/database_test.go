package database

import (
	"newel_classroom/internal/config"
	"newel_classroom/internal/model"
	"path/filepath"
	"testing"
)

func TestInitSQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "nested", "newel.db"),
		LogLevel: "silent",
	}

	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, m := range model.AllModels() {
		if !db.Migrator().HasTable(m) {
			t.Fatalf("expected table for %T", m)
		}
	}

	var fk int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", fk)
	}
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	if _, err := InitDB(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
