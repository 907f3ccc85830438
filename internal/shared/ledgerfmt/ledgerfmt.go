// Package ledgerfmt normalizes raw ledger value encodings into the
// representations the rest of the application works with.
package ledgerfmt

import (
	"fmt"
	"strings"
	"time"
)

// E8sPerToken is the minor-unit scale of the ledger (1 token = 1e8 e8s).
const E8sPerToken = 100_000_000

// FormatE8s renders a minor-unit integer amount as a 2-decimal-place
// major-unit string, e.g. 250000000 -> "2.50".
func FormatE8s(amount uint64) string {
	cents := amount / 1_000_000
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// NormalizePrice coerces an already-textual price into canonical 2-decimal
// form, e.g. "2.5" -> "2.50". Inputs it cannot parse are returned unchanged.
func NormalizePrice(price string) string {
	price = strings.TrimSpace(price)
	whole, frac, found := strings.Cut(price, ".")
	if !found {
		frac = ""
	}
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return price
		}
	}
	if whole == "" {
		whole = "0"
	}
	switch {
	case len(frac) == 0:
		frac = "00"
	case len(frac) == 1:
		frac += "0"
	case len(frac) > 2:
		frac = frac[:2]
	}
	return whole + "." + frac
}

// TimeFromNanos converts a nanosecond ledger timestamp to UTC time.
func TimeFromNanos(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}
