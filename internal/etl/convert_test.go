package etl

import (
	"testing"
	"time"
)

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		// Valid: basic numbers
		{name: "positive integer", input: "123", wantValid: true},
		{name: "zero", input: "0", wantValid: true},
		{name: "negative integer", input: "-456", wantValid: true},
		{name: "decimal number", input: "123.45", wantValid: true},
		{name: "leading decimal point", input: ".99", wantValid: true},

		// Valid: currency symbols and separators
		{name: "dollar sign", input: "$74.69", wantValid: true},
		{name: "euro sign", input: "€1234.56", wantValid: true},
		{name: "pound sign", input: "£1234.56", wantValid: true},
		{name: "thousands separator", input: "1,234,567.89", wantValid: true},
		{name: "dollar with separator", input: "$1,234.56", wantValid: true},

		// Valid: accounting format
		{name: "accounting negative parentheses", input: "(123.45)", wantValid: true},
		{name: "accounting negative with currency", input: "($1,234.56)", wantValid: true},

		// Valid: whitespace
		{name: "surrounded by whitespace", input: "  123.45  ", wantValid: true},
		{name: "explicit positive sign", input: "+123", wantValid: true},

		// Invalid
		{name: "empty string", input: "", wantValid: false},
		{name: "only whitespace", input: "   ", wantValid: false},
		{name: "alphabetic string", input: "abc", wantValid: false},
		{name: "mixed alphanumeric", input: "12abc34", wantValid: false},
		{name: "only currency symbol", input: "$", wantValid: false},
		{name: "multiple decimal points", input: "12.34.56", wantValid: false},
		{name: "double negative", input: "--123", wantValid: false},
		{name: "NaN", input: "NaN", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToPgNumeric(tt.input)

			if result.Valid != tt.wantValid {
				t.Errorf("ToPgNumeric(%q).Valid = %v, want %v",
					tt.input, result.Valid, tt.wantValid)
				return
			}

			if tt.wantValid {
				f, err := result.Float64Value()
				if err != nil || !f.Valid {
					t.Errorf("ToPgNumeric(%q) Float64Value invalid (err=%v)", tt.input, err)
				}
			}
		})
	}
}

func TestToPgNumeric_CurrencyValues(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"$74.69", 74.69},
		{"$1,234.56", 1234.56},
		{"(123.45)", -123.45},
		{"($1,000)", -1000},
		{"1,000,000", 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NumericFloat(ToPgNumeric(tt.input))
			if !ok {
				t.Fatalf("ToPgNumeric(%q) returned invalid", tt.input)
			}
			if got != tt.want {
				t.Errorf("ToPgNumeric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPgDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			name:      "ISO format",
			input:     "2019-01-05",
			wantValid: true,
			wantYear:  2019, wantMonth: time.January, wantDay: 5,
		},
		{
			name:      "US format with slashes",
			input:     "05/01/2019",
			wantValid: true,
			wantYear:  2019, wantMonth: time.May, wantDay: 1,
		},
		{
			name:      "US format single digits",
			input:     "1/5/2019",
			wantValid: true,
			wantYear:  2019, wantMonth: time.January, wantDay: 5,
		},
		{
			name:      "two digit year past century",
			input:     "05/01/99",
			wantValid: true,
			wantYear:  1999, wantMonth: time.May, wantDay: 1,
		},
		{
			name:      "text month",
			input:     "Jan 5, 2019",
			wantValid: true,
			wantYear:  2019, wantMonth: time.January, wantDay: 5,
		},
		{
			name:      "compact format",
			input:     "20190105",
			wantValid: true,
			wantYear:  2019, wantMonth: time.January, wantDay: 5,
		},
		{name: "empty string", input: "", wantValid: false},
		{name: "not a date", input: "not-a-date", wantValid: false},
		{name: "month out of range", input: "2019-13-01", wantValid: false},
		{name: "Feb 29 non-leap year", input: "2023-02-29", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToPgDate(tt.input)

			if result.Valid != tt.wantValid {
				t.Errorf("ToPgDate(%q).Valid = %v, want %v",
					tt.input, result.Valid, tt.wantValid)
				return
			}

			if tt.wantValid {
				if result.Time.Year() != tt.wantYear ||
					result.Time.Month() != tt.wantMonth ||
					result.Time.Day() != tt.wantDay {
					t.Errorf("ToPgDate(%q) = %v, want %d-%02d-%02d",
						tt.input, result.Time, tt.wantYear, tt.wantMonth, tt.wantDay)
				}
			}
		})
	}
}

func TestToPgTime(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantValid  bool
		wantMicros int64
	}{
		{
			name:      "24-hour with seconds",
			input:     "13:08:00",
			wantValid: true, wantMicros: (13*3600 + 8*60) * 1_000_000,
		},
		{
			name:      "24-hour without seconds",
			input:     "13:08",
			wantValid: true, wantMicros: (13*3600 + 8*60) * 1_000_000,
		},
		{
			name:      "12-hour PM",
			input:     "1:08 PM",
			wantValid: true, wantMicros: (13*3600 + 8*60) * 1_000_000,
		},
		{
			name:      "12-hour lowercase am",
			input:     "9:15 am",
			wantValid: true, wantMicros: (9*3600 + 15*60) * 1_000_000,
		},
		{
			name:      "midnight",
			input:     "00:00:00",
			wantValid: true, wantMicros: 0,
		},
		{name: "empty string", input: "", wantValid: false},
		{name: "hour out of range", input: "25:00", wantValid: false},
		{name: "not a time", input: "noonish", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToPgTime(tt.input)

			if result.Valid != tt.wantValid {
				t.Errorf("ToPgTime(%q).Valid = %v, want %v",
					tt.input, result.Valid, tt.wantValid)
				return
			}

			if tt.wantValid && result.Microseconds != tt.wantMicros {
				t.Errorf("ToPgTime(%q).Microseconds = %d, want %d",
					tt.input, result.Microseconds, tt.wantMicros)
			}
		})
	}
}

func TestToPgInt4(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue int32
	}{
		{name: "positive", input: "7", wantValid: true, wantValue: 7},
		{name: "zero", input: "0", wantValid: true, wantValue: 0},
		{name: "negative", input: "-3", wantValid: true, wantValue: -3},
		{name: "thousands separator", input: "1,000", wantValid: true, wantValue: 1000},
		{name: "whitespace", input: " 42 ", wantValid: true, wantValue: 42},
		{name: "empty", input: "", wantValid: false},
		{name: "fractional", input: "7.5", wantValid: false},
		{name: "alphabetic", input: "seven", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToPgInt4(tt.input)

			if result.Valid != tt.wantValid {
				t.Errorf("ToPgInt4(%q).Valid = %v, want %v",
					tt.input, result.Valid, tt.wantValid)
				return
			}

			if tt.wantValid && result.Int32 != tt.wantValue {
				t.Errorf("ToPgInt4(%q).Int32 = %d, want %d",
					tt.input, result.Int32, tt.wantValue)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple string unchanged", input: "hello", want: "hello"},
		{name: "empty string", input: "", want: ""},
		{name: "surrounded by whitespace", input: "  hello  ", want: "hello"},
		{name: "Excel formula with quotes", input: `="12345"`, want: "12345"},
		{name: "bare equals sign", input: "=SUM(A1)", want: "SUM(A1)"},
		{name: "double quotes removed", input: `"hello"`, want: "hello"},
		{name: "single quotes removed", input: "'hello'", want: "hello"},
		{name: "only quotes", input: `""`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	header := []string{"Branch", "CITY", " category ", `"unit_price"`}
	idx := MakeHeaderIndex(header)

	checks := map[string]int{
		"branch":     0,
		"city":       1,
		"category":   2,
		"unit_price": 3,
	}

	for key, wantPos := range checks {
		gotPos, ok := idx[key]
		if !ok {
			t.Errorf("MakeHeaderIndex(%v)[%q] not found, want index %d", header, key, wantPos)
			continue
		}
		if gotPos != wantPos {
			t.Errorf("MakeHeaderIndex(%v)[%q] = %d, want %d", header, key, gotPos, wantPos)
		}
	}
}
