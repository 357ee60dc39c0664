package etl

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultMaxFileSize is the maximum allowed CSV file size (100MB).
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// ErrEmptyFile is returned when the CSV contains no rows at all.
var ErrEmptyFile = errors.New("csv file is empty")

// Loader reads a delimited file into an in-memory Frame.
//
// All loader errors are fatal for the run: a missing file, an oversize file,
// or rows with inconsistent field counts abort the pipeline with no recovery.
type Loader struct {
	Path        string
	Delimiter   rune  // zero value means comma
	MaxFileSize int64 // zero value means DefaultMaxFileSize
}

// Load reads and parses the CSV file into a Frame.
// The first non-empty row becomes the header; header validation against the
// expected schema is the Cleaner's job.
func (l *Loader) Load() (*Frame, error) {
	maxSize := l.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input file not found: %s", l.Path)
		}
		return nil, fmt.Errorf("stat input file: %w", err)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("input file exceeds %d-byte limit: %s", maxSize, l.Path)
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	data = sanitizeUTF8(data)

	records, err := l.parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(l.Path), err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	// First non-empty row is the header.
	headerIdx := -1
	for i, row := range records {
		if !isEmptyRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrEmptyFile
	}

	frame := &Frame{
		SourceFile: filepath.Base(l.Path),
		Header:     records[headerIdx],
	}
	for _, row := range records[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}
		frame.Rows = append(frame.Rows, row)
	}

	return frame, nil
}

// parse decodes CSV data. FieldsPerRecord is left at its default so that a
// row with a ragged field count is a fatal parse error.
func (l *Loader) parse(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	if l.Delimiter != 0 {
		r.Comma = l.Delimiter
	}
	r.LazyQuotes = true
	return r.ReadAll()
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the Unicode
// replacement character.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if CleanCell(v) != "" {
			return false
		}
	}
	return true
}
