package etl

// cleaner.go applies the fixed sequence of transforms that turn a raw Frame
// into typed Records:
//
//  1. Exact-duplicate rows are removed.
//  2. Rows with any missing/empty field are removed (no imputation).
//  3. Each cell is normalized and coerced to its schema type; the currency
//     column is stripped of symbols and separators before the numeric cast.
//  4. Rows violating the non-negativity invariants are removed.
//
// A row is either kept whole or dropped whole; there is no repair. A header
// that does not match the expected schema is a fatal error, not a drop.

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Cleaner transforms a raw Frame into cleaned, typed Records. Specs must be
// in the same order as the Record's coerced fields, as SalesFields is.
type Cleaner struct {
	Specs []FieldSpec
}

// NewCleaner creates a Cleaner for the sales transaction schema.
func NewCleaner() *Cleaner {
	return &Cleaner{Specs: SalesFields}
}

// ValidateHeader checks that every expected column exists in the CSV header.
// Returns a mapping from column name to index, or an error listing missing
// columns.
func (c *Cleaner) ValidateHeader(header []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)
	var missing []string

	for _, spec := range c.Specs {
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("schema mismatch, missing columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// Clean runs all transforms over the frame and returns the surviving records
// with a report of what was dropped.
func (c *Cleaner) Clean(frame *Frame) ([]Record, CleanReport, error) {
	report := CleanReport{Input: len(frame.Rows)}

	idx, err := c.ValidateHeader(frame.Header)
	if err != nil {
		return nil, report, err
	}

	seen := make(map[string]struct{}, len(frame.Rows))
	records := make([]Record, 0, len(frame.Rows))

	for i, row := range frame.Rows {
		lineNum := i + 2 // 1-indexed, after header

		key := rowKey(row)
		if _, dup := seen[key]; dup {
			report.Duplicates++
			slog.Debug("duplicate row dropped", "line", lineNum)
			continue
		}
		seen[key] = struct{}{}

		rec, reason, ok := c.buildRecord(row, idx)
		if !ok {
			switch reason.kind {
			case dropIncomplete:
				report.Incomplete++
			default:
				report.Invalid++
			}
			slog.Debug("row dropped", "line", lineNum, "field", reason.field, "reason", reason.msg)
			continue
		}

		records = append(records, rec)
	}

	report.Output = len(records)
	return records, report, nil
}

type dropKind int

const (
	dropIncomplete dropKind = iota
	dropInvalid
)

type dropReason struct {
	kind  dropKind
	field string
	msg   string
}

// buildRecord coerces one raw row into a typed Record.
// Returns ok=false with the first drop reason encountered.
func (c *Cleaner) buildRecord(row []string, idx HeaderIndex) (Record, dropReason, bool) {
	var rec Record
	dsts := rec.fieldPtrs()

	for i, spec := range c.Specs {
		pos := idx[strings.ToLower(spec.Name)]
		if pos >= len(row) {
			return rec, dropReason{dropIncomplete, spec.Name, "missing cell"}, false
		}

		raw := CleanCell(row[pos])
		if raw == "" {
			return rec, dropReason{dropIncomplete, spec.Name, "empty field"}, false
		}

		if spec.Normalizer != nil {
			raw = spec.Normalizer(raw)
		}

		if !coerce(dsts[i], spec.Type, raw) {
			return rec, dropReason{dropInvalid, spec.Name, fmt.Sprintf("cannot coerce %q", raw)}, false
		}
	}

	if reason, ok := checkInvariants(&rec); !ok {
		return rec, reason, false
	}

	deriveTotal(&rec)
	return rec, dropReason{}, true
}

// coerce parses raw per the field type and stores the result in dst, a
// pointer to the matching pgtype value. Returns false if the value cannot
// be represented.
func coerce(dst any, t FieldType, raw string) bool {
	switch t {
	case FieldText:
		p := dst.(*pgtype.Text)
		*p = ToPgText(raw)
		return p.Valid
	case FieldNumeric:
		p := dst.(*pgtype.Numeric)
		*p = ToPgNumeric(raw)
		return p.Valid
	case FieldInteger:
		p := dst.(*pgtype.Int4)
		*p = ToPgInt4(raw)
		return p.Valid
	case FieldDate:
		p := dst.(*pgtype.Date)
		*p = ToPgDate(raw)
		return p.Valid
	case FieldTime:
		p := dst.(*pgtype.Time)
		*p = ToPgTime(raw)
		return p.Valid
	}
	return false
}

// checkInvariants enforces unit_price >= 0 and quantity >= 0.
func checkInvariants(rec *Record) (dropReason, bool) {
	price, ok := NumericFloat(rec.UnitPrice)
	if !ok || price < 0 {
		return dropReason{dropInvalid, "unit_price", "negative unit price"}, false
	}
	if rec.Quantity.Int32 < 0 {
		return dropReason{dropInvalid, "quantity", "negative quantity"}, false
	}
	return dropReason{}, true
}

// deriveTotal computes total = unit_price * quantity.
// Invariant checks have already run, so both operands are valid here.
func deriveTotal(rec *Record) {
	price, _ := NumericFloat(rec.UnitPrice)
	rec.Total = FloatToPgNumeric(price * float64(rec.Quantity.Int32))
}

// rowKey builds a dedup key from the raw cell values, joined on a
// separator that does not occur in the data.
func rowKey(row []string) string {
	return strings.Join(row, "\x1f")
}
