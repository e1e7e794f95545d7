package ingest

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

func TestCoerceNumericColumns(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want float64
	}{
		{"plain integer", "100", 100},
		{"decimal", "100.5", 100.5},
		{"negative", "-3.25", -3.25},
		{"scientific notation", "1e3", 1000},
		{"empty cell", "", 0},
		{"garbage", "abc", 0},
		{"trailing junk", "12abc", 0},
		{"nan literal", "NaN", 0},
		{"infinity literal", "Inf", 0},
		{"negative infinity", "-Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Coerce(domain.RawRow{schema.FieldTransactionAmt: tt.cell})
			assert.Equal(t, tt.want, rec[schema.FieldTransactionAmt])
		})
	}
}

func TestCoerceCategoricalAndUnknownColumnsPassThrough(t *testing.T) {
	raw := domain.RawRow{
		schema.FieldProductCD: "W",
		"card4":               "visa",
		"M1":                  "T",
		"mystery_column":      "whatever",
	}

	rec := Coerce(raw)

	assert.Equal(t, "W", rec[schema.FieldProductCD])
	assert.Equal(t, "visa", rec["card4"])
	assert.Equal(t, "T", rec["M1"])
	assert.Equal(t, "whatever", rec["mystery_column"])
}

func TestCoerceMixedRow(t *testing.T) {
	rec := Coerce(domain.RawRow{
		schema.FieldTransactionAmt: "100.5",
		schema.FieldProductCD:      "W",
	})
	assert.Equal(t, domain.Record{
		schema.FieldTransactionAmt: 100.5,
		schema.FieldProductCD:      "W",
	}, rec)

	rec = Coerce(domain.RawRow{
		schema.FieldTransactionAmt: "",
		schema.FieldProductCD:      "C",
	})
	assert.Equal(t, domain.Record{
		schema.FieldTransactionAmt: 0.0,
		schema.FieldProductCD:      "C",
	}, rec)
}

// Coercion is total: whatever text lands in a numeric cell, the result is
// a finite float64 and the row never fails.
func TestCoerceTotalProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("numeric cells always coerce to a finite float64", prop.ForAll(
		func(cell string) bool {
			rec := Coerce(domain.RawRow{schema.FieldTransactionAmt: cell})
			n, ok := rec[schema.FieldTransactionAmt].(float64)
			return ok && !math.IsNaN(n) && !math.IsInf(n, 0)
		},
		gen.AnyString(),
	))

	properties.Property("every input column appears in the record", prop.ForAll(
		func(amt, product string) bool {
			raw := domain.RawRow{
				schema.FieldTransactionAmt: amt,
				schema.FieldProductCD:      product,
			}
			rec := Coerce(raw)
			return len(rec) == len(raw) && rec.Has(schema.FieldTransactionAmt) && rec.Has(schema.FieldProductCD)
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
