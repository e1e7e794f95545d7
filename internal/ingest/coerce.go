package ingest

import (
	"math"
	"strconv"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

// Coerce converts one raw row into a typed record. Coercion is total: it
// always produces a record and never reports an error.
//
// Known numeric columns parse as float64; empty or non-numeric cells
// coerce to 0 rather than failing the row, so a single malformed cell
// cannot abort ingestion of the rest of the file. Categorical and unknown
// columns pass through unchanged.
func Coerce(raw domain.RawRow) domain.Record {
	rec := make(domain.Record, len(raw))
	for column, value := range raw {
		if schema.IsNumeric(column) {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				n = 0
			}
			rec[column] = n
			continue
		}
		rec[column] = value
	}
	return rec
}
