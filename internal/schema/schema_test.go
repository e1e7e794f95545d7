package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		field string
		kind  Kind
		known bool
	}{
		{"transaction amount is numeric", FieldTransactionAmt, Numeric, true},
		{"transaction datetime is numeric", FieldTransactionDT, Numeric, true},
		{"card1 is numeric", "card1", Numeric, true},
		{"card4 is categorical", "card4", Categorical, true},
		{"card6 is categorical", "card6", Categorical, true},
		{"counting feature is numeric", "C14", Numeric, true},
		{"vesta feature is numeric", "V20", Numeric, true},
		{"match flag is categorical", "M9", Categorical, true},
		{"email domain is categorical", FieldPurchaserDomain, Categorical, true},
		{"unknown column", "definitely_not_a_field", Categorical, false},
		{"out of range vesta feature", "V21", Categorical, false},
		{"out of range counting feature", "C15", Categorical, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, known := KindOf(tt.field)
			assert.Equal(t, tt.known, known)
			if known {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestIsNumericAgreesWithKindOf(t *testing.T) {
	for _, field := range Fields() {
		kind, known := KindOf(field)
		assert.True(t, known, field)
		assert.Equal(t, kind == Numeric, IsNumeric(field), field)
	}
}

func TestIsRequired(t *testing.T) {
	assert.True(t, IsRequired(FieldTransactionDT))
	assert.True(t, IsRequired(FieldTransactionAmt))
	assert.True(t, IsRequired(FieldProductCD))
	assert.True(t, IsRequired(FieldCard1))

	assert.False(t, IsRequired("card2"))
	assert.False(t, IsRequired(FieldPurchaserDomain))
	assert.False(t, IsRequired("V1"))
}

func TestEmailDomainFieldsReturnsCopy(t *testing.T) {
	fields := EmailDomainFields()
	assert.Equal(t, []string{FieldPurchaserDomain, FieldRecipientDomain}, fields)

	fields[0] = "mutated"
	assert.Equal(t, []string{FieldPurchaserDomain, FieldRecipientDomain}, EmailDomainFields())
}

func TestFieldsCoversFullSchema(t *testing.T) {
	fields := Fields()

	// 17 scalar numerics + C1-C14 + V1-V20, then 5 scalar categoricals + M1-M9.
	assert.Len(t, fields, 51+14)

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		assert.False(t, seen[f], "duplicate field %s", f)
		seen[f] = true
		assert.True(t, IsKnown(f))
	}
}
