package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fraudlens/fraud-console/internal/domain"
	"github.com/fraudlens/fraud-console/internal/schema"
)

func validRecord() domain.Record {
	return domain.Record{
		schema.FieldTransactionDT:  86400.0,
		schema.FieldTransactionAmt: 100.5,
		schema.FieldProductCD:      "W",
		schema.FieldCard1:          13926.0,
	}
}

func TestCheckValidRecord(t *testing.T) {
	violations := Check(validRecord())
	assert.True(t, violations.OK())
	assert.Empty(t, violations)
}

func TestCheckCollectsEveryViolation(t *testing.T) {
	rec := domain.Record{
		schema.FieldTransactionDT:  86400.0,
		schema.FieldTransactionAmt: -5.0,
		schema.FieldProductCD:      "",
		schema.FieldCard1:          0.0,
	}

	violations := Check(rec)

	// Not fail-fast: the negative amount, the blank product code and the
	// zero card all show up together, in rule order.
	assert.Equal(t, Violations{
		"Transaction Amount is required and must be positive",
		"Product Code is required",
		"Card1 is required and must be positive",
	}, violations)
}

func TestCheckSingleViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(domain.Record)
		want   string
	}{
		{
			"zero datetime",
			func(r domain.Record) { r[schema.FieldTransactionDT] = 0.0 },
			"Transaction DateTime is required and must be positive",
		},
		{
			"missing datetime",
			func(r domain.Record) { delete(r, schema.FieldTransactionDT) },
			"Transaction DateTime is required and must be positive",
		},
		{
			"negative amount",
			func(r domain.Record) { r[schema.FieldTransactionAmt] = -1.0 },
			"Transaction Amount is required and must be positive",
		},
		{
			"whitespace product code",
			func(r domain.Record) { r[schema.FieldProductCD] = "   " },
			"Product Code is required",
		},
		{
			"negative card1",
			func(r domain.Record) { r[schema.FieldCard1] = -2.0 },
			"Card1 is required and must be positive",
		},
		{
			"bad purchaser domain",
			func(r domain.Record) { r[schema.FieldPurchaserDomain] = "not a domain" },
			"Purchaser email domain format is invalid",
		},
		{
			"bad recipient domain",
			func(r domain.Record) { r[schema.FieldRecipientDomain] = ".gmail.com" },
			"Recipient email domain format is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			violations := Check(rec)
			assert.Equal(t, Violations{tt.want}, violations)
		})
	}
}

func TestCheckSkipsAbsentEmailDomains(t *testing.T) {
	rec := validRecord()
	violations := Check(rec)
	assert.True(t, violations.OK())

	rec[schema.FieldPurchaserDomain] = "gmail.com"
	assert.True(t, Check(rec).OK())
}

func TestValidEmailDomain(t *testing.T) {
	valid := []string{
		"gmail.com",
		"outlook.co.uk",
		"ab.cd",
		"mail-server.example.org",
		"EXAMPLE.COM",
	}
	for _, d := range valid {
		assert.True(t, ValidEmailDomain(d), d)
	}

	invalid := []string{
		"",
		".gmail.com",
		"gmail.com.",
		"gmail..com",
		"-gmail.com",
		"gmail-.com",
		"gm ail.com",
		"gmail_.com",
	}
	for _, d := range invalid {
		assert.False(t, ValidEmailDomain(d), d)
	}
}
