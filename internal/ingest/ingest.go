// Package ingest turns a loosely-typed CSV file into an ordered batch of
// typed transaction records plus the parallel raw rows they came from.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fraudlens/fraud-console/internal/domain"
)

// DecodeError reports that the file itself could not be parsed as CSV,
// e.g. malformed quoting or a ragged row. Malformed cell values never
// produce a DecodeError; they are normalized by Coerce.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode csv: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Batch is the result of ingesting one file: two order-aligned slices of
// equal length where Records[i] is the coercion of RawRows[i]. The order
// matches the source file exactly and must never be re-sorted between
// ingestion and reconciliation.
type Batch struct {
	Records []domain.Record
	RawRows []domain.RawRow
}

// Len returns the number of data rows in the batch.
func (b *Batch) Len() int { return len(b.Records) }

// ReadBatch decodes a header-led CSV stream and coerces every data row in
// document order. Fully blank lines are skipped. It fails with a
// *DecodeError only when the CSV grammar itself cannot be parsed; no
// partial batch is returned in that case.
func ReadBatch(r io.Reader) (*Batch, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DecodeError{Err: fmt.Errorf("empty file")}
	}
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	batch := &Batch{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodeError{Err: err}
		}

		raw := make(domain.RawRow, len(header))
		for i, column := range header {
			if i < len(row) {
				raw[column] = row[i]
			}
		}
		batch.RawRows = append(batch.RawRows, raw)
		batch.Records = append(batch.Records, Coerce(raw))
	}

	return batch, nil
}
