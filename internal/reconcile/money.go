package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

// moneyRe captures a number plus an optional magnitude suffix
var moneyRe = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(k|m|mm|b|bn|t|thousand|million|billion|trillion)?\b`)

var currencyTokens = []string{"$", "€", "£", "usd", "eur", "gbp", "us$"}

// parseMoney parses monetary strings like "$150M", "€1.2B", "150 million" or
// "USD 150,000,000" into a numeric value in base currency units. The currency
// itself is not converted; amounts in different currencies compare unequal
// through their raw text before this is consulted.
func parseMoney(s string) (float64, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	for _, token := range currencyTokens {
		cleaned = strings.ReplaceAll(cleaned, token, " ")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}

	match := moneyRe.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	switch match[2] {
	case "k", "thousand":
		value *= 1e3
	case "m", "mm", "million":
		value *= 1e6
	case "b", "bn", "billion":
		value *= 1e9
	case "t", "trillion":
		value *= 1e12
	}

	return value, true
}

// canonicalMoney returns a comparison key for a monetary field: the numeric
// value when parseable, otherwise the whitespace-normalized lowercase text
func canonicalMoney(s string) string {
	if value, ok := parseMoney(s); ok {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return normalizeText(s)
}

// normalizeText lowercases and collapses whitespace for comparison
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
