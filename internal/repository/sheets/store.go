// Package sheets stores the inventory in a Google spreadsheet. One sheet holds
// the entries (id, name, expiry, added, barcode, quantity from row 2) and a
// second holds the barcode catalog (barcode, name from row 1).
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sheetsync/sheetsync/internal/config"
	"github.com/sheetsync/sheetsync/internal/models"
	"github.com/sheetsync/sheetsync/internal/util"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

// dateLayouts are tried in order when reading a date cell. The spreadsheet
// may render dates in its own locale.
var dateLayouts = []string{util.DateFormat, "1/2/2006", "2/1/2006", util.DisplayDateFormat, time.RFC3339}

// Store is the Google Sheets inventory backend.
type Store struct {
	svc            *sheetsapi.Service
	spreadsheetID  string
	inventorySheet string
	productSheet   string
	now            func() time.Time
}

// New connects to the spreadsheet named by cfg. Extra client options are
// appended after the ones derived from cfg.
func New(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Store, error) {
	var clientOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, option.WithScopes(sheetsapi.SpreadsheetsScope))
	clientOpts = append(clientOpts, opts...)

	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	return &Store{
		svc:            svc,
		spreadsheetID:  cfg.SpreadsheetID,
		inventorySheet: cfg.InventorySheet,
		productSheet:   cfg.ProductSheet,
		now:            time.Now,
	}, nil
}

// List reads every entry row. Rows without an id are blank and skipped;
// rows that cannot be parsed are logged and skipped.
func (s *Store) List(ctx context.Context) ([]models.InventoryEntry, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.inventorySheet+"!A2:F").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading inventory sheet: %w", err)
	}

	entries := []models.InventoryEntry{}
	for i, row := range resp.Values {
		if cell(row, 0) == "" {
			continue
		}
		e, err := rowToEntry(row)
		if err != nil {
			slog.Warn("skipping malformed inventory row", "row", i+2, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Add appends entry as a new row.
func (s *Store) Add(ctx context.Context, entry *models.InventoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = util.NewID()
	}
	if entry.AddedDate.IsZero() {
		entry.AddedDate = util.StartOfDay(s.now())
	}

	row := []any{
		entry.ID,
		entry.Name,
		util.FormatDate(entry.ExpiryDate),
		util.FormatDate(entry.AddedDate),
		entry.Barcode,
		entry.Quantity,
	}
	return s.append(ctx, s.inventorySheet+"!A:F", row)
}

// Delete finds the row whose column A equals id and deletes it.
func (s *Store) Delete(ctx context.Context, id string) error {
	gid, err := s.sheetID(ctx, s.inventorySheet)
	if err != nil {
		return err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.inventorySheet+"!A1:A").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading inventory ids: %w", err)
	}

	index := -1
	for i, row := range resp.Values {
		if cell(row, 0) == id {
			index = i
			break
		}
	}
	if index < 0 {
		return models.ErrNotFound
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(index),
					EndIndex:   int64(index + 1),
					// Sheet 0 and row 0 are valid and must not be dropped as empty.
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting inventory row %d: %w", index+1, err)
	}
	return nil
}

// FindProduct scans the catalog sheet for barcode.
func (s *Store) FindProduct(ctx context.Context, barcode string) (*models.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, models.ErrProductNotFound
}

// Products returns every catalog row with both cells filled.
func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.productSheet+"!A1:B").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading product sheet: %w", err)
	}

	var products []models.Product
	for _, row := range resp.Values {
		p := models.Product{Barcode: cell(row, 0), Name: cell(row, 1)}
		if p.Barcode != "" && p.Name != "" {
			products = append(products, p)
		}
	}
	return products, nil
}

// AddProduct appends a catalog row.
func (s *Store) AddProduct(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return s.append(ctx, s.productSheet+"!A:B", []any{product.Barcode, product.Name})
}

func (s *Store) append(ctx context.Context, rng string, row []any) error {
	vr := &sheetsapi.ValueRange{Values: [][]any{row}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending to %s: %w", rng, err)
	}
	return nil
}

// sheetID resolves a sheet title to its numeric gid.
func (s *Store) sheetID(ctx context.Context, title string) (int64, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("reading spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", title)
}

func rowToEntry(row []any) (models.InventoryEntry, error) {
	e := models.InventoryEntry{
		ID:       cell(row, 0),
		Name:     cell(row, 1),
		Barcode:  cell(row, 4),
		Quantity: 1,
	}

	var err error
	if e.ExpiryDate, err = parseDate(cell(row, 2)); err != nil {
		return e, fmt.Errorf("expiry date: %w", err)
	}
	if e.AddedDate, err = parseDate(cell(row, 3)); err != nil {
		return e, fmt.Errorf("added date: %w", err)
	}
	if q := cell(row, 5); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return e, fmt.Errorf("quantity %q is not a positive whole number", q)
		}
		e.Quantity = n
	}
	return e, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return util.StartOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// cell returns the trimmed string form of row[i], or "" past the row's end.
// The API returns trailing empty cells as a shorter row.
func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
