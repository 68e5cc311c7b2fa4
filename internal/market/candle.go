package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Candle is one closing price sample. CloseTime is Unix ms and is strictly
// increasing within a fetched sequence.
type Candle struct {
	CloseTime int64
	Close     decimal.Decimal
}

// MarshalJSON renders the close price as a bare JSON number rather than the
// quoted form decimal.Decimal emits by default.
func (c Candle) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"close_time":%d,"close":%s}`, c.CloseTime, c.Close.String())), nil
}
