package receipt

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// FormatNumber renders an amount with the given decimal places in Indonesian
// convention: "." groups thousands, "," separates decimals. 30000 with zero
// decimals becomes "30.000". decimal keeps float artifacts out of the
// rounding.
func FormatNumber(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := decimal.NewFromFloat(v).StringFixed(int32(decimals))

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".")
	if decimals > 0 {
		out += "," + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatMoney renders an amount with the configured currency symbol and
// position.
func FormatMoney(v float64, cs entity.CompanySettings) string {
	n := FormatNumber(v, cs.CurrencyDecimals)
	if cs.CurrencySymbol == "" {
		return n
	}
	if cs.CurrencyPosition == "after" {
		return n + " " + cs.CurrencySymbol
	}
	return cs.CurrencySymbol + " " + n
}
