// Package currency provides amount parsing, display formatting and
// rate-table conversion used throughout the application.
package currency

import (
	"fmt"
	"regexp"
	"strings"

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

var symbolPattern = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪CHF\s]`)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles formats like "1'234.56", "1.234,56", "1234.56", "CHF 1234,56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if amountStr == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// ParseAmountOrZero parses like ParseAmount but degrades unparsable input to
// zero. Display calculations must never fail on a malformed amount field.
func ParseAmountOrZero(amountStr string) decimal.Decimal {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		log.WithField("value", amountStr).Debug("Unparsable amount, treating as zero")
		return decimal.Zero
	}
	return amount
}

// StandardizeAmount converts various currency string formats to a standard
// form accepted by decimal.NewFromString. Handles "CHF 1'234.56", "€1.234,56",
// "1 234,56" and similar.
func StandardizeAmount(amountStr string) string {
	// Strip currency symbols and whitespace
	amountStr = symbolPattern.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Anglo format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts[len(parts)-1]) <= 2 && len(parts) == 2 {
			// Comma used as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma used as thousand separator (1,234 or 1,234,567)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Apostrophes are Swiss thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// FormatAmount formats a decimal amount to a consistent display format with
// the specified currency, two decimal places, no thousands separators.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)

	if currency == "" {
		return formattedAmount
	}

	switch strings.ToUpper(currency) {
	case "EUR":
		return "€" + formattedAmount
	case "USD":
		return "$" + formattedAmount
	case "GBP":
		return "£" + formattedAmount
	case "JPY":
		return "¥" + formattedAmount
	case "CHF":
		return "CHF " + formattedAmount
	default:
		return strings.ToUpper(currency) + " " + formattedAmount
	}
}
