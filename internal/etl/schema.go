package etl

import "strings"

// paymentMethods maps lowercase variants to their canonical labels.
// The source exports are inconsistent about hyphenation and casing.
var paymentMethods = map[string]string{
	"cash":        "Cash",
	"credit card": "Credit card",
	"credit":      "Credit card",
	"creditcard":  "Credit card",
	"debit card":  "Debit card",
	"debit":       "Debit card",
	"ewallet":     "Ewallet",
	"e-wallet":    "Ewallet",
	"e wallet":    "Ewallet",
}

// NormalizePaymentMethod converts payment method variants to a canonical
// label. Unrecognized values are returned as-is.
func NormalizePaymentMethod(s string) string {
	if canonical, ok := paymentMethods[strings.ToLower(strings.TrimSpace(s))]; ok {
		return canonical
	}
	return s
}

// NormalizeBranch uppercases branch codes ("walmart-044" -> "WALMART-044").
func NormalizeBranch(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// SalesFields is the expected schema of the sales transactions CSV.
// Every column is required and every cell must be present and coercible;
// the Cleaner drops any row that violates this.
var SalesFields = []FieldSpec{
	{Name: "branch", Type: FieldText, Normalizer: NormalizeBranch},
	{Name: "city", Type: FieldText},
	{Name: "category", Type: FieldText},
	{Name: "unit_price", Type: FieldNumeric},
	{Name: "quantity", Type: FieldInteger},
	{Name: "date", Type: FieldDate},
	{Name: "time", Type: FieldTime},
	{Name: "payment_method", Type: FieldText, Normalizer: NormalizePaymentMethod},
	{Name: "rating", Type: FieldNumeric},
	{Name: "profit_margin", Type: FieldNumeric},
}

// Columns returns the header column names for a list of field specs.
func Columns(specs []FieldSpec) []string {
	cols := make([]string, len(specs))
	for i, spec := range specs {
		cols[i] = spec.Name
	}
	return cols
}
