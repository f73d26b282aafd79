package dbmigrate

import (
	"fmt"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
)

// Target is the database a migration command runs against.
type Target struct {
	URL    string
	Source string // env var the URL came from
	// Warning is set when the URL is usable but not recommended for DDL.
	Warning string
}

type urlCandidate struct {
	source  string
	url     string
	warning string
}

// SelectTarget picks the connection for command. The order is
// DATABASE_URL_DIRECT, DATABASE_URL, DATABASE_URL_POOLED. "down" drops the
// meal plan tables, so it and requireDirect accept only the direct URL.
func SelectTarget(cfg *config.Config, command string, requireDirect bool) (Target, error) {
	direct := urlCandidate{source: "DATABASE_URL_DIRECT", url: cfg.DatabaseURLDirect}

	if requireDirect || command == "down" {
		if direct.url == "" {
			return Target{}, fmt.Errorf("DATABASE_URL_DIRECT is required for migrate %s", command)
		}
		return direct.target(), nil
	}

	candidates := []urlCandidate{
		direct,
		{source: "DATABASE_URL", url: cfg.DatabaseURLRaw},
		{
			source:  "DATABASE_URL_POOLED",
			url:     cfg.DatabaseURLPooled,
			warning: "using pooled connection for DDL is not recommended; set DATABASE_URL_DIRECT",
		},
	}
	for _, c := range candidates {
		if c.url != "" {
			return c.target(), nil
		}
	}
	return Target{}, fmt.Errorf("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")
}

func (c urlCandidate) target() Target {
	return Target{URL: c.url, Source: c.source, Warning: c.warning}
}
