package delivery

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDeliveryDayCount returns the number of delivery days in a day list.
//
// Missing and empty values count as zero days. Otherwise the value is split on
// commas and every position counts, so a keyword-only value like "Monthly"
// counts as one day and "M,,T" counts as three.
func ParseDeliveryDayCount(days Cell) int {
	if !days.Valid {
		return 0
	}
	s := unquote(days.Value)
	if strings.TrimSpace(s) == "" {
		return 0
	}
	return strings.Count(s, ",") + 1
}

// ParseCurrency parses a decorated currency amount such as "$1,234.50".
// Every character other than digits and the decimal point is dropped before
// parsing. Missing or unparsable values yield zero; the result is never
// negative.
func ParseCurrency(raw Cell) decimal.Decimal {
	if !raw.Valid {
		return decimal.Zero
	}
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw.Value)
	if digits == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// dayTokens returns the trimmed, non-empty tokens of a day list in order.
// Repeated tokens are kept.
func dayTokens(days Cell) []string {
	if !days.Valid {
		return nil
	}
	var tokens []string
	for _, token := range strings.Split(unquote(days.Value), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// unquote trims whitespace and removes one pair of surrounding double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
