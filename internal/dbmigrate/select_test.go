package dbmigrate

import (
	"context"
	"io/fs"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
)

func TestSelectTarget(t *testing.T) {
	all := &config.Config{
		DatabaseURLDirect: "postgres://direct",
		DatabaseURLRaw:    "postgres://url",
		DatabaseURLPooled: "postgres://pooled",
	}
	noDirect := &config.Config{
		DatabaseURLRaw:    "postgres://url",
		DatabaseURLPooled: "postgres://pooled",
	}
	pooledOnly := &config.Config{DatabaseURLPooled: "postgres://pooled"}

	tests := []struct {
		name          string
		cfg           *config.Config
		command       string
		requireDirect bool
		wantURL       string
		wantSource    string
		wantWarning   bool
		wantErr       bool
	}{
		{"direct preferred", all, "up", false, "postgres://direct", "DATABASE_URL_DIRECT", false, false},
		{"falls back to DATABASE_URL", noDirect, "status", false, "postgres://url", "DATABASE_URL", false, false},
		{"pooled with warning", pooledOnly, "up", false, "postgres://pooled", "DATABASE_URL_POOLED", true, false},
		{"require direct", noDirect, "up", true, "", "", false, true},
		{"down needs direct", noDirect, "down", false, "", "", false, true},
		{"down with direct", all, "down", false, "postgres://direct", "DATABASE_URL_DIRECT", false, false},
		{"nothing configured", &config.Config{}, "up", false, "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := SelectTarget(tt.cfg, tt.command, tt.requireDirect)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SelectTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if target.URL != tt.wantURL || target.Source != tt.wantSource {
				t.Errorf("target = %+v, want %s from %s", target, tt.wantURL, tt.wantSource)
			}
			if (target.Warning != "") != tt.wantWarning {
				t.Errorf("warning = %q, want warning=%v", target.Warning, tt.wantWarning)
			}
		})
	}
}

func TestMigrationSource_Embedded(t *testing.T) {
	fsys, dir := migrationSource("")
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	found := false
	for _, e := range entries {
		if e.Name() == "00001_init.sql" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 00001_init.sql in embedded migrations")
	}
}

func TestRun_EmptyURL(t *testing.T) {
	if err := Run(context.Background(), "up", "", ""); err == nil {
		t.Fatal("expected error for empty database URL")
	}
}
