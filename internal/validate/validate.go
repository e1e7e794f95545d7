// Package validate checks a single, possibly partial, transaction record
// against the business rules that gate manual submission. Batch rows are
// not re-validated here; they rely on the coercer's total-success
// guarantee and are rejected, if at all, by the scoring service.
package validate

import (
	"regexp"
	"strings"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

// Violations is an ordered list of human-readable rule violations.
// An empty list means the record is acceptable for submission.
type Violations []string

// OK reports whether no rule was violated.
func (v Violations) OK() bool { return len(v) == 0 }

// Labels of 1-63 alphanumeric/hyphen characters, each starting and ending
// alphanumeric, joined by single dots.
var domainPattern = regexp.MustCompile(
	`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9](?:\.[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9])*$`)

// Check runs every rule and collects all violations; it is deliberately
// not fail-fast so the operator sees the full list at once.
func Check(rec domain.Record) Violations {
	var violations Violations

	if rec.Number(schema.FieldTransactionDT) <= 0 {
		violations = append(violations, "Transaction DateTime is required and must be positive")
	}
	if rec.Number(schema.FieldTransactionAmt) <= 0 {
		violations = append(violations, "Transaction Amount is required and must be positive")
	}
	if strings.TrimSpace(rec.Token(schema.FieldProductCD)) == "" {
		violations = append(violations, "Product Code is required")
	}
	if rec.Number(schema.FieldCard1) <= 0 {
		violations = append(violations, "Card1 is required and must be positive")
	}

	if d := rec.Token(schema.FieldPurchaserDomain); d != "" && !ValidEmailDomain(d) {
		violations = append(violations, "Purchaser email domain format is invalid")
	}
	if d := rec.Token(schema.FieldRecipientDomain); d != "" && !ValidEmailDomain(d) {
		violations = append(violations, "Recipient email domain format is invalid")
	}

	return violations
}

// ValidEmailDomain reports whether s is syntactically a domain name.
// Matching is case-insensitive and rejects leading or trailing dots.
func ValidEmailDomain(s string) bool {
	return domainPattern.MatchString(s)
}
