// Package schema is the canonical lookup table for transaction fields.
// Both the ingestion coercer and the submission validator consult it, so a
// field's numeric/categorical classification can never diverge between the
// two paths.
package schema

import "strconv"

// Kind classifies how a field's raw text is interpreted.
type Kind int

const (
	// Numeric fields parse as float64; unparseable input coerces to 0.
	Numeric Kind = iota
	// Categorical fields carry a short text token verbatim.
	Categorical
)

// Canonical field names referenced throughout the pipeline.
const (
	FieldTransactionDT   = "TransactionDT"
	FieldTransactionAmt  = "TransactionAmt"
	FieldProductCD       = "ProductCD"
	FieldCard1           = "card1"
	FieldCard4           = "card4"
	FieldPurchaserDomain = "P_emaildomain"
	FieldRecipientDomain = "R_emaildomain"
)

var numericFields = buildSet(
	[]string{
		FieldTransactionDT, FieldTransactionAmt,
		"card1", "card2", "card3", "card5",
		"addr1", "addr2", "dist1", "dist2",
		"D1", "D2", "D3", "D4", "D5", "D10", "D15",
	},
	seq("C", 1, 14),
	seq("V", 1, 20),
)

var categoricalFields = buildSet(
	[]string{
		FieldProductCD, "card4", "card6",
		FieldPurchaserDomain, FieldRecipientDomain,
	},
	seq("M", 1, 9),
)

// requiredFields gate single-record submission; see internal/validate.
var requiredFields = map[string]bool{
	FieldTransactionDT:  true,
	FieldTransactionAmt: true,
	FieldProductCD:      true,
	FieldCard1:          true,
}

// emailDomainFields are validated against domain-name syntax when present.
var emailDomainFields = []string{FieldPurchaserDomain, FieldRecipientDomain}

// IsNumeric reports whether name is a known numeric field.
func IsNumeric(name string) bool {
	return numericFields[name]
}

// IsKnown reports whether name belongs to the closed schema at all.
// Unknown columns are preserved in raw rows but never typed.
func IsKnown(name string) bool {
	return numericFields[name] || categoricalFields[name]
}

// KindOf returns the kind of a known field. The second return is false for
// columns outside the schema.
func KindOf(name string) (Kind, bool) {
	switch {
	case numericFields[name]:
		return Numeric, true
	case categoricalFields[name]:
		return Categorical, true
	default:
		return Categorical, false
	}
}

// IsRequired reports whether a field must be present, and valid, for a
// minimally submittable record.
func IsRequired(name string) bool {
	return requiredFields[name]
}

// EmailDomainFields lists the fields checked against domain syntax.
func EmailDomainFields() []string {
	out := make([]string, len(emailDomainFields))
	copy(out, emailDomainFields)
	return out
}

// Fields returns every known field name. Order is not specified.
func Fields() []string {
	out := make([]string, 0, len(numericFields)+len(categoricalFields))
	for name := range numericFields {
		out = append(out, name)
	}
	for name := range categoricalFields {
		out = append(out, name)
	}
	return out
}

func seq(prefix string, from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, prefix+strconv.Itoa(i))
	}
	return out
}

func buildSet(groups ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, group := range groups {
		for _, name := range group {
			set[name] = true
		}
	}
	return set
}
