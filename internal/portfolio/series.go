// Package portfolio reconstructs how cash and asset holdings evolved over a
// candle window by replaying the trade history against the price series.
package portfolio

import (
	"fmt"
	"sort"

	"portview/internal/market"

	"github.com/shopspring/decimal"
)

// InvalidInputError reports a caller-side precondition violation.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "portfolio: invalid input: " + e.Reason
}

// Point is one row of the reconstructed series. Total is computed as
// Cash + AssetValue at construction time, so the identity holds exactly.
type Point struct {
	Timestamp  int64
	Cash       decimal.Decimal
	Asset      decimal.Decimal
	AssetValue decimal.Decimal
	Total      decimal.Decimal
}

// MarshalJSON renders decimal fields as bare JSON numbers.
func (p Point) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(
		`{"timestamp":%d,"cash":%s,"asset":%s,"asset_value":%s,"total":%s}`,
		p.Timestamp, p.Cash.String(), p.Asset.String(), p.AssetValue.String(), p.Total.String(),
	)), nil
}

// runningBalance is the accumulator threaded through the merge. Values start
// at zero and may go negative: the series is the relative change over the
// window, not absolute account state.
type runningBalance struct {
	cash  decimal.Decimal
	asset decimal.Decimal
}

func (b runningBalance) apply(t market.Trade) runningBalance {
	switch t.Side {
	case market.SideBuy:
		b.asset = b.asset.Add(t.ExecutedQuantity)
		b.cash = b.cash.Sub(t.SettlementAmount)
	case market.SideSell:
		b.asset = b.asset.Sub(t.ExecutedQuantity)
		b.cash = b.cash.Add(t.SettlementAmount)
	}
	return b
}

// BuildSeries merges candles and trades into one point per candle via a
// forward merge-join: a single cursor walks the trade stream, applying every
// trade executed at or before each candle's close time exactly once.
//
// Candles must already be ascending by close time (checked defensively);
// trades arrive in any order and are stable-sorted here, which makes the
// output deterministic regardless of how pages were delivered. A trade
// executed after the last candle's close never affects any point; a trade
// executed before the first candle's close folds into the first point.
func BuildSeries(candles []market.Candle, trades []market.Trade) ([]Point, error) {
	for i := 1; i < len(candles); i++ {
		if candles[i].CloseTime <= candles[i-1].CloseTime {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("candles not strictly ascending at index %d", i)}
		}
	}

	sorted := make([]market.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExecutedAt < sorted[j].ExecutedAt
	})

	var bal runningBalance
	cursor := 0
	out := make([]Point, 0, len(candles))
	for _, c := range candles {
		for cursor < len(sorted) && sorted[cursor].ExecutedAt <= c.CloseTime {
			bal = bal.apply(sorted[cursor])
			cursor++
		}
		assetValue := bal.asset.Mul(c.Close)
		out = append(out, Point{
			Timestamp:  c.CloseTime,
			Cash:       bal.cash,
			Asset:      bal.asset,
			AssetValue: assetValue,
			Total:      bal.cash.Add(assetValue),
		})
	}
	return out, nil
}
