package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Kind selects what is exported from a plan.
type Kind string

const (
	KindPlan    Kind = "plan"
	KindGrocery Kind = "grocery"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported format %q (allowed: pdf, csv, json)", s)
	}
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPlan, KindGrocery:
		return k, nil
	case "":
		return KindPlan, nil
	default:
		return "", fmt.Errorf("unsupported kind %q (allowed: plan, grocery)", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

// Document is everything a rendered export shows. It is built from one
// immutable plan version.
type Document struct {
	ClientName  string
	Version     int
	PayloadHash string
	StartDate   time.Time
	Week        mealgen.WeeklyPlanResult
	Groceries   []mealgen.GroceryItem
}

// Filename is stable for a given version, kind and format.
func (d Document) Filename(kind Kind, f Format) string {
	return fmt.Sprintf("meal-%s-v%d-%s.%s", kind, d.Version, shortHash(d.PayloadHash), f)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// Result describes a published export. URL is empty when the bytes must be
// streamed to the caller.
type Result struct {
	Key         string
	URL         string
	ExpiresIn   int
	Data        []byte
	ContentType string
	Filename    string
}
