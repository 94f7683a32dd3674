// Package interest computes yearly interest for balance-tiered ("zoned")
// savings accounts. Banks using zoned accounts pay a different annual rate on
// each portion of the deposit; this package folds a balance over the ordered
// tiers and also derives the blended effective rate.
package interest

import (
	"sort"

	"mwehrli/finview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var oneHundred = decimal.NewFromInt(100)

// ComputeYearlyInterest returns the yearly interest earned on balance across
// the given zones, in the same currency unit as the balance.
//
// Zones may be supplied in any order; they are sorted by FromAmount before the
// walk. A zero ToAmount marks an unbounded tier and resolves to the balance.
// A balance of zero or less, or an empty zone set, yields zero.
//
// Zones are not validated or normalized here: each tier is evaluated
// independently against the full balance, so overlapping tiers double-count
// the overlapped range. Keeping tiers disjoint is the account configuration's
// job.
func ComputeYearlyInterest(balance decimal.Decimal, zones []models.InterestZone) decimal.Decimal {
	if len(zones) == 0 || !balance.IsPositive() {
		return decimal.Zero
	}

	sorted := make([]models.InterestZone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FromAmount.LessThan(sorted[j].FromAmount)
	})

	total := decimal.Zero
	for _, zone := range sorted {
		effectiveTo := zone.ToAmount
		if zone.IsUnbounded() {
			effectiveTo = balance
		}

		// Balance never reaches this tier.
		if balance.LessThan(zone.FromAmount) {
			continue
		}

		upperLimit := decimal.Min(balance, effectiveTo)
		amountInZone := upperLimit.Sub(zone.FromAmount)
		if !amountInZone.IsPositive() {
			continue
		}

		total = total.Add(amountInZone.Mul(zone.InterestRate).Div(oneHundred))
	}

	return total
}

// EffectiveRate returns the single blended annual percentage that, applied to
// the whole balance, would produce the same yearly interest as summing each
// tier's contribution. Zero when the balance is zero or negative.
func EffectiveRate(balance decimal.Decimal, zones []models.InterestZone) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	return ComputeYearlyInterest(balance, zones).Div(balance).Mul(oneHundred)
}

// ParseDecimalOrZero parses a serialized decimal amount, treating empty or
// unparsable input as zero. Tolerating bad numeric input belongs here and
// nowhere else: interest figures feed display code that has to degrade
// gracefully rather than fail on a malformed account configuration.
func ParseDecimalOrZero(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	dec, err := decimal.NewFromString(value)
	if err != nil {
		log.WithField("value", value).Debug("Unparsable decimal input, treating as zero")
		return decimal.Zero
	}
	return dec
}

// ZoneFromStrings builds an InterestZone from serialized decimal fields,
// applying the default-zero policy of ParseDecimalOrZero to each field.
func ZoneFromStrings(accountID, fromAmount, toAmount, rate string) models.InterestZone {
	return models.InterestZone{
		AccountID:    accountID,
		FromAmount:   ParseDecimalOrZero(fromAmount),
		ToAmount:     ParseDecimalOrZero(toAmount),
		InterestRate: ParseDecimalOrZero(rate),
	}
}

// YearlyInterestFromStrings is the string-input front door used when balance
// and zone fields arrive as serialized decimals.
func YearlyInterestFromStrings(balance string, zones []models.InterestZone) decimal.Decimal {
	return ComputeYearlyInterest(ParseDecimalOrZero(balance), zones)
}

// EffectiveRateFromStrings mirrors YearlyInterestFromStrings for the blended rate.
func EffectiveRateFromStrings(balance string, zones []models.InterestZone) decimal.Decimal {
	return EffectiveRate(ParseDecimalOrZero(balance), zones)
}
