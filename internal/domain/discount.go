package domain

import "strings"

// discountCodes maps a normalized code to an integer percentage.
// Percentages are bounded to [0,100] so a discounted total can never go
// negative.
var discountCodes = map[string]int{
	"BDU10":        10,
	"VERANO15":     15,
	"BIENVENIDO20": 20,
}

// NormalizeDiscountCode trims and uppercases user input.
func NormalizeDiscountCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupDiscount resolves a normalized code against the registry.
func LookupDiscount(code string) (percent int, ok bool) {
	percent, ok = discountCodes[code]
	return percent, ok
}

// RegisterDiscountCode adds or overrides a registry entry. Percentages
// outside [0,100] are ignored.
func RegisterDiscountCode(code string, percent int) {
	if percent < 0 || percent > 100 {
		return
	}
	code = NormalizeDiscountCode(code)
	if code == "" {
		return
	}
	discountCodes[code] = percent
}
