package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestExtractHourlyRange(t *testing.T) {
	ex, ok := ExtractFromText("Pay: $50 - $70 per hour plus benefits", DefaultBounds())
	require.True(t, ok)
	assert.Equal(t, domain.IntervalHourly, ex.Interval)
	assert.Equal(t, 50.0, ex.MinAmount)
	assert.Equal(t, 70.0, ex.MaxAmount)
	assert.Equal(t, 104000.0, ex.AnnualMin)
	assert.Equal(t, 145600.0, ex.AnnualMax)
	assert.Equal(t, "USD", ex.Currency)
}

func TestExtractYearlyRange(t *testing.T) {
	ex, ok := ExtractFromText("Salary range $70,000 - $90,000 DOE", DefaultBounds())
	require.True(t, ok)
	assert.Equal(t, domain.IntervalYearly, ex.Interval)
	assert.Equal(t, 70000.0, ex.MinAmount)
	assert.Equal(t, 90000.0, ex.MaxAmount)
	assert.Equal(t, 70000.0, ex.AnnualMin)
	assert.Equal(t, 90000.0, ex.AnnualMax)
}

func TestExtractUngroupedThousands(t *testing.T) {
	ex, ok := ExtractFromText("base salary $50000 - $70000", DefaultBounds())
	require.True(t, ok)
	assert.Equal(t, domain.IntervalYearly, ex.Interval)
	assert.Equal(t, 50000.0, ex.MinAmount)
	assert.Equal(t, 70000.0, ex.MaxAmount)
}

func TestExtractKSuffix(t *testing.T) {
	ex, ok := ExtractFromText("comp is $100k-120k", DefaultBounds())
	require.True(t, ok)
	assert.Equal(t, domain.IntervalYearly, ex.Interval)
	assert.Equal(t, 100000.0, ex.MinAmount)
	assert.Equal(t, 120000.0, ex.MaxAmount)
}

func TestExtractMonthlyRange(t *testing.T) {
	// lower bound between the hourly and monthly thresholds classifies monthly
	ex, ok := ExtractFromText("pays $5,000 - $7,000", DefaultBounds())
	require.True(t, ok)
	assert.Equal(t, domain.IntervalMonthly, ex.Interval)
	assert.Equal(t, 60000.0, ex.AnnualMin)
	assert.Equal(t, 84000.0, ex.AnnualMax)
}

func TestExtractRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no range", "competitive salary"},
		{"single amount", "pays $95,000 per year"},
		{"inverted range", "$90,000 - $70,000"},
		{"equal bounds", "$80,000 - $80,000"},
		{"above plausible", "$800,000 - $900,000"},
		{"below plausible as hourly", "$0.10 - $0.20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ExtractFromText(tt.text, DefaultBounds())
			assert.False(t, ok)
		})
	}
}

func TestAnnualize(t *testing.T) {
	c := &domain.Compensation{
		Interval:  domain.IntervalHourly,
		MinAmount: fptr(50),
		MaxAmount: fptr(70),
		Currency:  "USD",
	}
	Annualize(c)
	assert.Equal(t, domain.IntervalYearly, c.Interval)
	assert.Equal(t, 104000.0, *c.MinAmount)
	assert.Equal(t, 145600.0, *c.MaxAmount)

	// idempotent once yearly
	Annualize(c)
	assert.Equal(t, 104000.0, *c.MinAmount)
}

func TestAnnualizeMonthly(t *testing.T) {
	c := &domain.Compensation{
		Interval:  domain.IntervalMonthly,
		MinAmount: fptr(8000),
	}
	Annualize(c)
	assert.Equal(t, domain.IntervalYearly, c.Interval)
	assert.Equal(t, 96000.0, *c.MinAmount)
	assert.Nil(t, c.MaxAmount)
}

func TestAnnualizeNilSafe(t *testing.T) {
	assert.NotPanics(t, func() { Annualize(nil) })
}
