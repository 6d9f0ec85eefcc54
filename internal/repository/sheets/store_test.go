package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sheetsync/sheetsync/internal/config"
	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
	"google.golang.org/api/option"
)

// fakeSheets serves the handful of Sheets API calls the store makes
// against two in-memory grids.
type fakeSheets struct {
	mu        sync.Mutex
	inventory [][]any // includes the header row
	products  [][]any
	gid       int64

	appendOptions []string
	deletes       []map[string]any
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/sheet-123")

	switch {
	case r.Method == http.MethodGet && path == "":
		writeJSON(w, map[string]any{
			"spreadsheetId": "sheet-123",
			"sheets": []any{
				map[string]any{"properties": map[string]any{"sheetId": 99, "title": "database"}},
				map[string]any{"properties": map[string]any{"sheetId": f.gid, "title": "Inventory"}},
			},
		})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/values/"):
		rng := strings.TrimPrefix(path, "/values/")
		var values [][]any
		switch rng {
		case "Inventory!A2:F":
			if len(f.inventory) > 1 {
				values = f.inventory[1:]
			}
		case "Inventory!A1:A":
			for _, row := range f.inventory {
				if len(row) == 0 {
					values = append(values, []any{})
					continue
				}
				values = append(values, row[:1])
			}
		case "database!A1:B":
			values = f.products
		default:
			http.Error(w, "unexpected range "+rng, http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"range": rng, "values": values})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var body struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.appendOptions = append(f.appendOptions,
			r.URL.Query().Get("valueInputOption")+"/"+r.URL.Query().Get("insertDataOption"))

		switch strings.TrimSuffix(strings.TrimPrefix(path, "/values/"), ":append") {
		case "Inventory!A:F":
			f.inventory = append(f.inventory, body.Values...)
		case "database!A:B":
			f.products = append(f.products, body.Values...)
		default:
			http.Error(w, "unexpected append range", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"spreadsheetId": "sheet-123"})

	case r.Method == http.MethodPost && path == ":batchUpdate":
		var body struct {
			Requests []struct {
				DeleteDimension struct {
					Range map[string]any `json:"range"`
				} `json:"deleteDimension"`
			} `json:"requests"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, req := range body.Requests {
			rng := req.DeleteDimension.Range
			f.deletes = append(f.deletes, rng)
			start := int(rng["startIndex"].(float64))
			f.inventory = append(f.inventory[:start], f.inventory[start+1:]...)
		}
		writeJSON(w, map[string]any{"spreadsheetId": "sheet-123"})

	default:
		http.Error(w, "unexpected request "+r.Method+" "+r.URL.Path, http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestStore(t *testing.T, fake *fakeSheets) *Store {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.SheetsConfig{
		SpreadsheetID:  "sheet-123",
		InventorySheet: "Inventory",
		ProductSheet:   "database",
		Endpoint:       srv.URL + "/",
	}
	store, err := New(context.Background(), cfg,
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	store.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local) }
	return store
}

func seededFake() *fakeSheets {
	return &fakeSheets{
		gid: 0,
		inventory: [][]any{
			{"ID", "Name", "Expiry", "Added", "Barcode", "Quantity"},
			{"a1", "Organic Milk", "2024-06-20", "2024-06-10", "123456789012", "2"},
			{"a2", "Sourdough Bread", "6/13/2024", "6/10/2024", "234567890123"},
			{},
			{"bad", "Broken", "not a date", "2024-06-10", "1"},
			{"a3", "Greek Yogurt", "2024-06-16", "2024-06-14", "456789012345", "x"},
		},
		products: [][]any{
			{"123456789012", "Organic Milk"},
			{"234567890123", "Sourdough Bread"},
			{"", "No Barcode"},
		},
	}
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t, seededFake())

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 valid rows, got %d: %+v", len(entries), entries)
	}

	milk := entries[0]
	if milk.ID != "a1" || milk.Barcode != "123456789012" || milk.Quantity != 2 {
		t.Errorf("unexpected milk row %+v", milk)
	}
	if util.FormatDate(milk.ExpiryDate) != "2024-06-20" {
		t.Errorf("milk expiry = %s", util.FormatDate(milk.ExpiryDate))
	}

	bread := entries[1]
	if bread.Quantity != 1 {
		t.Errorf("missing quantity column should read as 1, got %d", bread.Quantity)
	}
	if util.FormatDate(bread.ExpiryDate) != "2024-06-13" {
		t.Errorf("locale date parsed as %s", util.FormatDate(bread.ExpiryDate))
	}
}

func TestStore_Add(t *testing.T) {
	fake := &fakeSheets{inventory: [][]any{{"ID"}}}
	store := newTestStore(t, fake)
	ctx := context.Background()

	e := &models.InventoryEntry{
		Name:       "Apple Juice",
		Barcode:    "678901234567",
		ExpiryDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local),
		Quantity:   3,
	}
	if err := store.Add(ctx, e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !util.IsValidID(e.ID) {
		t.Errorf("expected generated id, got %q", e.ID)
	}

	if len(fake.inventory) != 2 {
		t.Fatalf("expected appended row, got %v", fake.inventory)
	}
	row := fake.inventory[1]
	if row[1] != "Apple Juice" || row[2] != "2024-07-01" || row[3] != "2024-06-15" || row[4] != "678901234567" {
		t.Errorf("unexpected row %v", row)
	}
	if fake.appendOptions[0] != "USER_ENTERED/INSERT_ROWS" {
		t.Errorf("append options = %s", fake.appendOptions[0])
	}

	entries, err := store.List(ctx)
	if err != nil || len(entries) != 1 || entries[0].Quantity != 3 {
		t.Errorf("round trip = %+v, %v", entries, err)
	}

	if err := store.Add(ctx, &models.InventoryEntry{}); len(models.InvalidFields(err)) == 0 {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	fake := seededFake()
	store := newTestStore(t, fake)
	ctx := context.Background()

	if err := store.Delete(ctx, "a2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(fake.deletes) != 1 {
		t.Fatalf("expected one batch update, got %d", len(fake.deletes))
	}
	rng := fake.deletes[0]
	if rng["sheetId"] != float64(0) {
		t.Errorf("sheetId = %v, want 0 sent explicitly", rng["sheetId"])
	}
	if rng["dimension"] != "ROWS" || rng["startIndex"] != float64(2) || rng["endIndex"] != float64(3) {
		t.Errorf("unexpected range %v", rng)
	}

	entries, _ := store.List(ctx)
	for _, e := range entries {
		if e.ID == "a2" {
			t.Error("deleted row still listed")
		}
	}

	if err := store.Delete(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Products(t *testing.T) {
	fake := seededFake()
	store := newTestStore(t, fake)
	ctx := context.Background()

	p, err := store.FindProduct(ctx, "234567890123")
	if err != nil || p.Name != "Sourdough Bread" {
		t.Errorf("FindProduct = %v, %v", p, err)
	}
	if _, err := store.FindProduct(ctx, "999"); !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	if err := store.AddProduct(ctx, &models.Product{Barcode: "999", Name: "Oat Milk"}); err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if p, err := store.FindProduct(ctx, "999"); err != nil || p.Name != "Oat Milk" {
		t.Errorf("after AddProduct: %v, %v", p, err)
	}

	products, err := store.Products(ctx)
	if err != nil || len(products) != 3 {
		t.Errorf("Products = %v, %v", products, err)
	}
}

func TestStore_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	store, err := New(context.Background(), config.SheetsConfig{
		SpreadsheetID: "x", InventorySheet: "Inventory", ProductSheet: "database", Endpoint: srv.URL + "/",
	}, option.WithoutAuthentication(), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.List(context.Background()); err == nil {
		t.Error("expected error from a failing API")
	}
}

func TestCell(t *testing.T) {
	row := []any{" a ", float64(3), nil, true}
	tests := []struct {
		i    int
		want string
	}{
		{0, "a"},
		{1, "3"},
		{2, ""},
		{3, "true"},
		{9, ""},
	}
	for _, tt := range tests {
		if got := cell(row, tt.i); got != tt.want {
			t.Errorf("cell(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}
