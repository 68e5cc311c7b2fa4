// Package symbol handles the wire encodings the CoinSwitch Pro API expects
// for trading pairs.
package symbol

import (
	"fmt"
	"strings"
)

// Quote currencies the closed-orders filter understands, longest suffix first.
var quoteSuffixes = []string{"usdt", "inr"}

// PairFilter rewrites a chart symbol into the closed-orders currency filter:
// lower-case the symbol and split the trailing quote currency from the asset
// with a comma. "BTCINR" -> "btc,inr", "ethusdt" -> "eth,usdt".
//
// The remote endpoint matches this encoding verbatim, so it must not be
// normalized any further.
func PairFilter(sym string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(sym))
	if s == "" {
		return "", fmt.Errorf("symbol is required")
	}
	for _, quote := range quoteSuffixes {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			asset := s[:len(s)-len(quote)]
			return asset + "," + quote, nil
		}
	}
	return "", fmt.Errorf("symbol %q has no recognized quote currency suffix", sym)
}

// WireFilter wraps a pair filter in the JSON-array form the closed-orders
// query parameter carries: "btc,inr" -> `["btc,inr"]`.
func WireFilter(filter string) string {
	return `["` + filter + `"]`
}
