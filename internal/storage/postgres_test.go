package storage

import (
	"testing"

	"github.com/mayank1ahuja/da-walmart-project/internal/etl"
)

// The COPY column list must stay in lockstep with the cleaning schema:
// every schema field in order, plus the derived total.
func TestSalesColumnsMatchSchema(t *testing.T) {
	want := append(etl.Columns(etl.SalesFields), "total")

	if len(salesColumns) != len(want) {
		t.Fatalf("salesColumns has %d entries, want %d", len(salesColumns), len(want))
	}
	for i := range want {
		if salesColumns[i] != want[i] {
			t.Errorf("salesColumns[%d] = %q, want %q", i, salesColumns[i], want[i])
		}
	}
}

func TestExpectedColumns(t *testing.T) {
	cols := ExpectedColumns()

	if len(cols) != len(salesColumns) {
		t.Fatalf("ExpectedColumns() has %d entries, want %d", len(cols), len(salesColumns))
	}
	for i := range salesColumns {
		if cols[i] != salesColumns[i] {
			t.Errorf("ExpectedColumns()[%d] = %q, want %q", i, cols[i], salesColumns[i])
		}
	}

	// Callers get a copy, not the backing slice.
	cols[0] = "mutated"
	if salesColumns[0] == "mutated" {
		t.Error("ExpectedColumns() returned the backing slice")
	}
}
