// Package etl provides the load/clean/sink pipeline for retail sales CSV data.
// This package has no database dependencies beyond the Sink interface and can
// be exercised entirely in memory.
package etl

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldInteger
	FieldDate
	FieldTime
)

// FieldSpec defines validation rules for a single CSV column.
type FieldSpec struct {
	Name       string              // Column header name (case-insensitive match)
	Type       FieldType           // Expected data type
	Normalizer func(string) string // Optional transformation applied before coercion
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// Frame is the raw in-memory table produced by the Loader: one header row
// and zero or more data rows, all unparsed strings.
type Frame struct {
	SourceFile string
	Header     []string
	Rows       [][]string
}

// Shape returns the row and column counts of the frame.
func (f *Frame) Shape() (rows, cols int) {
	return len(f.Rows), len(f.Header)
}

// Record is one cleaned sales transaction. All fields are non-null after
// cleaning; Total is derived as UnitPrice * Quantity.
type Record struct {
	Branch        pgtype.Text
	City          pgtype.Text
	Category      pgtype.Text
	UnitPrice     pgtype.Numeric
	Quantity      pgtype.Int4
	Date          pgtype.Date
	Time          pgtype.Time
	PaymentMethod pgtype.Text
	Rating        pgtype.Numeric
	ProfitMargin  pgtype.Numeric
	Total         pgtype.Numeric
}

// fieldPtrs returns pointers to the coerced columns in schema order. The
// order must match SalesFields; Total is derived after coercion and is not
// included.
func (r *Record) fieldPtrs() []any {
	return []any{
		&r.Branch, &r.City, &r.Category, &r.UnitPrice, &r.Quantity,
		&r.Date, &r.Time, &r.PaymentMethod, &r.Rating, &r.ProfitMargin,
	}
}

// CleanReport summarizes what the Cleaner did to a frame.
type CleanReport struct {
	Input      int // data rows before cleaning
	Duplicates int // exact-duplicate rows dropped
	Incomplete int // rows dropped for a missing/empty field
	Invalid    int // rows dropped for a failed coercion or invariant
	Output     int // rows surviving all transforms
}

// Dropped returns the total number of rows removed during cleaning.
func (r CleanReport) Dropped() int {
	return r.Duplicates + r.Incomplete + r.Invalid
}

// Sink is the destination store for cleaned records. Replace swaps the full
// table contents for the given records and returns the number written.
type Sink interface {
	Replace(ctx context.Context, sourceFile string, report CleanReport, recs []Record) (int64, error)
}

// Result is the outcome of one pipeline run.
type Result struct {
	SourceFile  string
	RowsRead    int
	Columns     int
	Report      CleanReport
	RowsWritten int64
	Duration    time.Duration
}
