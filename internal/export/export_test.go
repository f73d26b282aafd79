package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/blob"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
)

func testDocument(t *testing.T) Document {
	t.Helper()
	gen := mealgen.NewGenerator(catalog.Default())
	week, err := gen.GenerateWeek(mealgen.Request{
		FoodIDs: []string{"chicken-breast", "brown-rice", "broccoli", "olive-oil", "greek-yogurt", "oats", "banana", "almonds"},
		Targets: mealgen.MacroTargets{Calories: 2200, Protein: 165, Carbs: 220, Fat: 73},
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("GenerateWeek: %v", err)
	}
	return Document{
		ClientName:  "Alex",
		Version:     3,
		PayloadHash: "0123456789abcdef0123",
		StartDate:   time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		Week:        week,
		Groceries:   mealgen.AggregateGroceries(week),
	}
}

type fakeStore struct {
	objects    map[string][]byte
	presignErr error
	putErr     error
}

func (f *fakeStore) PutObject(ctx context.Context, key string, data []byte, contentType string) (int64, error) {
	if f.putErr != nil {
		return 0, f.putErr
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = data
	return int64(len(data)), nil
}

func (f *fakeStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	return f.objects[key], nil
}

func (f *fakeStore) PresignGet(ctx context.Context, key string, ttlSeconds int) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://s3.example.com/" + key + "?sig=1", nil
}

func (f *fakeStore) DeleteObject(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func TestParseFormatAndKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPDF, false},
		{"CSV", FormatCSV, false},
		{" json ", FormatJSON, false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if k, err := ParseKind(""); err != nil || k != KindPlan {
		t.Errorf("ParseKind(\"\") = %q, %v", k, err)
	}
	if _, err := ParseKind("recipes"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPlanCSV(t *testing.T) {
	doc := testDocument(t)

	data, err := Render(doc, KindPlan, FormatCSV)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if rows[0][0] != "date" || len(rows[0]) != 11 {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	ingredients := 0
	for _, day := range doc.Week.Days {
		for _, meal := range day.Plan.Meals {
			if meal.Placeholder {
				ingredients++
				continue
			}
			ingredients += len(meal.Ingredients)
		}
	}
	if len(rows)-1 != ingredients {
		t.Errorf("expected %d rows, got %d", ingredients, len(rows)-1)
	}
	if rows[1][0] != "2026-10-12" || rows[len(rows)-1][0] != "2026-10-18" {
		t.Errorf("unexpected date range %s..%s", rows[1][0], rows[len(rows)-1][0])
	}
}

func TestGroceryCSVAndJSON(t *testing.T) {
	doc := testDocument(t)

	data, err := Render(doc, KindGrocery, FormatCSV)
	if err != nil {
		t.Fatalf("Render csv: %v", err)
	}
	rows, _ := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if len(rows)-1 != len(doc.Groceries) {
		t.Errorf("expected %d grocery rows, got %d", len(doc.Groceries), len(rows)-1)
	}

	data, err = Render(doc, KindGrocery, FormatJSON)
	if err != nil {
		t.Fatalf("Render json: %v", err)
	}
	var out struct {
		Version int                   `json:"version"`
		Items   []mealgen.GroceryItem `json:"items"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Version != 3 || len(out.Items) != len(doc.Groceries) {
		t.Errorf("unexpected grocery json: version=%d items=%d", out.Version, len(out.Items))
	}
}

func TestRenderPDF(t *testing.T) {
	doc := testDocument(t)

	for _, kind := range []Kind{KindPlan, KindGrocery} {
		data, err := Render(doc, kind, FormatPDF)
		if err != nil {
			t.Fatalf("Render %s: %v", kind, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("%s: output is not a PDF", kind)
		}
	}
}

func TestPublishWithoutStoreStreams(t *testing.T) {
	svc := NewService(nil, 0, nil)

	res, err := svc.Publish(context.Background(), "default/c1", testDocument(t), KindPlan, FormatCSV)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.URL != "" || len(res.Data) == 0 || res.Key != "" {
		t.Errorf("expected streamed result, got %+v", res)
	}
	if res.Filename != "meal-plan-v3-0123456789ab.csv" {
		t.Errorf("unexpected filename %q", res.Filename)
	}
}

func TestPublishPresigns(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, 600, nil)

	res, err := svc.Publish(context.Background(), "default/c1", testDocument(t), KindGrocery, FormatPDF)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	wantKey := "exports/default/c1/meal-grocery-v3-0123456789ab.pdf"
	if res.Key != wantKey {
		t.Errorf("expected key %q, got %q", wantKey, res.Key)
	}
	if !strings.HasPrefix(res.URL, "https://s3.example.com/"+wantKey) || res.ExpiresIn != 600 {
		t.Errorf("unexpected presign result: %+v", res)
	}
	if res.Data != nil {
		t.Error("presigned result should not carry data")
	}
	if _, ok := store.objects[wantKey]; !ok {
		t.Error("object was not uploaded")
	}
}

func TestPublishFallsBackToStreaming(t *testing.T) {
	tests := []struct {
		name  string
		store blob.Store
	}{
		{"local store", mustLocal(t)},
		{"presign error", &fakeStore{presignErr: errors.New("boom")}},
		{"put error", &fakeStore{putErr: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.store, 0, nil)
			res, err := svc.Publish(context.Background(), "default/c1", testDocument(t), KindPlan, FormatJSON)
			if err != nil {
				t.Fatalf("Publish: %v", err)
			}
			if res.URL != "" || len(res.Data) == 0 {
				t.Errorf("expected streamed bytes, got %+v", res)
			}
		})
	}
}

func mustLocal(t *testing.T) blob.Store {
	t.Helper()
	store, err := blob.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return store
}
