package interest

import (
	"testing"

	"mwehrli/finview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func zone(from, to, rate string) models.InterestZone {
	return models.InterestZone{
		FromAmount:   decimal.RequireFromString(from),
		ToAmount:     decimal.RequireFromString(to),
		InterestRate: decimal.RequireFromString(rate),
	}
}

func TestComputeYearlyInterest(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		zones    []models.InterestZone
		expected string
	}{
		{
			name:     "Empty zone list",
			balance:  "10000",
			zones:    nil,
			expected: "0",
		},
		{
			name:     "Zero balance",
			balance:  "0",
			zones:    []models.InterestZone{zone("0", "0", "2.5")},
			expected: "0",
		},
		{
			name:     "Negative balance",
			balance:  "-500",
			zones:    []models.InterestZone{zone("0", "0", "2.5")},
			expected: "0",
		},
		{
			name:     "Single unbounded zone",
			balance:  "10000",
			zones:    []models.InterestZone{zone("0", "0", "2.5")},
			expected: "250",
		},
		{
			name:    "Two tiers with balance in second tier",
			balance: "150000",
			zones: []models.InterestZone{
				zone("0", "100000", "1.0"),
				zone("100000", "0", "2.0"),
			},
			expected: "2000",
		},
		{
			name:    "Balance below first tier lower bound",
			balance: "50",
			zones: []models.InterestZone{
				zone("100", "0", "5"),
			},
			expected: "0",
		},
		{
			name:    "Balance inside bounded tier",
			balance: "60000",
			zones: []models.InterestZone{
				zone("0", "100000", "1.0"),
				zone("100000", "0", "2.0"),
			},
			expected: "600",
		},
		{
			name:    "Balance exactly at tier boundary",
			balance: "100000",
			zones: []models.InterestZone{
				zone("0", "100000", "1.0"),
				zone("100000", "0", "2.0"),
			},
			expected: "1000",
		},
		{
			name:    "Three tiers",
			balance: "250000",
			zones: []models.InterestZone{
				zone("0", "50000", "0.5"),
				zone("50000", "200000", "1.0"),
				zone("200000", "0", "1.5"),
			},
			expected: "2500",
		},
		{
			name:    "Fractional rate",
			balance: "1000",
			zones: []models.InterestZone{
				zone("0", "0", "0.25"),
			},
			expected: "2.5",
		},
		{
			name:    "Negative rate passes through untouched",
			balance: "1000",
			zones: []models.InterestZone{
				zone("0", "0", "-1"),
			},
			expected: "-10",
		},
		{
			// Overlapping tiers are not normalized: each zone is evaluated
			// against the full balance, so the overlap counts twice.
			name:    "Overlapping zones double-count",
			balance: "1000",
			zones: []models.InterestZone{
				zone("0", "1000", "1"),
				zone("0", "1000", "1"),
			},
			expected: "20",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeYearlyInterest(decimal.RequireFromString(tc.balance), tc.zones)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got),
				"expected %s but got %s", tc.expected, got.String())
		})
	}
}

func TestComputeYearlyInterestOrderIndependent(t *testing.T) {
	ordered := []models.InterestZone{
		zone("0", "100000", "1.0"),
		zone("100000", "200000", "1.5"),
		zone("200000", "0", "2.0"),
	}
	shuffled := []models.InterestZone{ordered[2], ordered[0], ordered[1]}

	balance := decimal.RequireFromString("250000")
	assert.True(t, ComputeYearlyInterest(balance, ordered).Equal(ComputeYearlyInterest(balance, shuffled)))
}

func TestComputeYearlyInterestDoesNotMutateInput(t *testing.T) {
	zones := []models.InterestZone{
		zone("100000", "0", "2.0"),
		zone("0", "100000", "1.0"),
	}

	ComputeYearlyInterest(decimal.RequireFromString("150000"), zones)

	// Caller's slice order is preserved; the sort happens on a copy.
	assert.True(t, zones[0].FromAmount.Equal(decimal.RequireFromString("100000")))
	assert.True(t, zones[1].FromAmount.Equal(decimal.Zero))
}

func TestComputeYearlyInterestIdempotent(t *testing.T) {
	zones := []models.InterestZone{
		zone("0", "100000", "1.0"),
		zone("100000", "0", "2.0"),
	}
	balance := decimal.RequireFromString("150000")

	first := ComputeYearlyInterest(balance, zones)
	second := ComputeYearlyInterest(balance, zones)
	assert.True(t, first.Equal(second))
}

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		zones    []models.InterestZone
		expected string // rounded to 4 places
	}{
		{
			name:     "Zero balance",
			balance:  "0",
			zones:    []models.InterestZone{zone("0", "0", "2.5")},
			expected: "0.0000",
		},
		{
			name:     "Empty zones",
			balance:  "10000",
			zones:    nil,
			expected: "0.0000",
		},
		{
			name:     "Single unbounded zone equals its own rate",
			balance:  "12345.67",
			zones:    []models.InterestZone{zone("0", "0", "2.5")},
			expected: "2.5000",
		},
		{
			name:    "Blended two-tier rate",
			balance: "150000",
			zones: []models.InterestZone{
				zone("0", "100000", "1.0"),
				zone("100000", "0", "2.0"),
			},
			expected: "1.3333",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveRate(decimal.RequireFromString(tc.balance), tc.zones)
			assert.Equal(t, tc.expected, got.StringFixed(4))
		})
	}
}

func TestParseDecimalOrZero(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", "0"},
		{"Plain decimal", "123.45", "123.45"},
		{"Negative", "-7.5", "-7.5"},
		{"Garbage", "abc", "0"},
		{"Partial garbage", "12x", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDecimalOrZero(tc.input)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got),
				"expected %s but got %s", tc.expected, got.String())
		})
	}
}

func TestYearlyInterestFromStrings(t *testing.T) {
	zones := []models.InterestZone{zone("0", "0", "2")}

	got := YearlyInterestFromStrings("1000", zones)
	assert.True(t, decimal.RequireFromString("20").Equal(got))

	// Unparsable balance degrades to zero interest instead of failing.
	assert.True(t, YearlyInterestFromStrings("not-a-number", zones).IsZero())
	assert.True(t, EffectiveRateFromStrings("", zones).IsZero())
}

func TestZoneFromStrings(t *testing.T) {
	z := ZoneFromStrings("acct-1", "100", "", "1.25")
	assert.Equal(t, "acct-1", z.AccountID)
	assert.True(t, z.FromAmount.Equal(decimal.RequireFromString("100")))
	assert.True(t, z.ToAmount.IsZero())
	assert.True(t, z.IsUnbounded())
	assert.True(t, z.InterestRate.Equal(decimal.RequireFromString("1.25")))
}
