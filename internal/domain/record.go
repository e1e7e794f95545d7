// Package domain holds the core types shared by the ingestion,
// scoring and reconciliation layers.
package domain

import "github.com/fraudlens/fraud-console/internal/schema"

// Record is one typed transaction, keyed by schema field name.
// Values are float64 for numeric fields and string for categorical or
// unknown columns. A field absent from the map reads as 0 (numeric) or
// "" (categorical), never as an error, so downstream arithmetic is always
// well-defined.
type Record map[string]any

// RawRow is the original, uncoerced CSV row keyed by column header.
// It is kept verbatim for display and export, including columns the
// schema does not recognize.
type RawRow map[string]string

// Number returns the value of a numeric field, or 0 when the field is
// absent or holds a non-numeric value.
func (r Record) Number(field string) float64 {
	if v, ok := r[field].(float64); ok {
		return v
	}
	return 0
}

// Token returns the value of a categorical field, or "" when absent.
func (r Record) Token(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Has reports whether the field was present on the source row at all.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy. Records are immutable after construction
// except for controlled form-edit flows, which edit a clone and replace
// the original wholesale.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Amount is a convenience accessor for the transaction amount field.
func (r Record) Amount() float64 {
	return r.Number(schema.FieldTransactionAmt)
}
