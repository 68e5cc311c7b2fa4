// Package analytics aggregates closed-orders history into per-asset trading
// summaries.
package analytics

import (
	"strings"

	"portview/internal/market"

	"github.com/shopspring/decimal"
)

// SideSummary aggregates one side (buy or sell) of an asset's executed orders.
type SideSummary struct {
	Count         int             `json:"count"`
	VolumeQuote   decimal.Decimal `json:"volume_quote"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
}

// LastTrade is the most recent executed order for an asset.
type LastTrade struct {
	Side       market.TradeSide `json:"side"`
	Price      decimal.Decimal  `json:"price"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Amount     decimal.Decimal  `json:"amount"`
	CreatedAt  string           `json:"created_at"`
	ExecutedAt int64            `json:"executed_at"`
}

// AssetSummary aggregates all closed orders for one traded asset. Only
// executed orders contribute to volumes and quantities.
type AssetSummary struct {
	OrderCount       int             `json:"order_count"`
	ExecutedOrders   int             `json:"executed_orders"`
	CancelledOrders  int             `json:"cancelled_orders"`
	TotalVolumeQuote decimal.Decimal `json:"total_volume_quote"`
	Buys             SideSummary     `json:"buy_orders"`
	Sells            SideSummary     `json:"sell_orders"`
	LastTrade        *LastTrade      `json:"last_trade,omitempty"`
}

// Summarize groups orders by traded asset. asset, when non-empty, restricts
// the result to that one asset (case-insensitive).
func Summarize(orders []market.Trade, asset string) map[string]AssetSummary {
	asset = strings.ToLower(strings.TrimSpace(asset))
	out := make(map[string]AssetSummary)
	for _, o := range orders {
		curr := o.Currency
		if curr == "" {
			continue
		}
		if asset != "" && curr != asset {
			continue
		}
		s := out[curr]
		s.OrderCount++
		switch {
		case o.Executed():
			s.ExecutedOrders++
			s.TotalVolumeQuote = s.TotalVolumeQuote.Add(o.SettlementAmount)
			side := &s.Buys
			if o.Side == market.SideSell {
				side = &s.Sells
			}
			side.Count++
			side.VolumeQuote = side.VolumeQuote.Add(o.SettlementAmount)
			side.TotalQuantity = side.TotalQuantity.Add(o.ExecutedQuantity)
			if o.AvgExecutionPrice.IsPositive() {
				side.AvgPrice = o.AvgExecutionPrice
			}
			if s.LastTrade == nil || o.ExecutedAt > s.LastTrade.ExecutedAt {
				s.LastTrade = &LastTrade{
					Side:       o.Side,
					Price:      o.AvgExecutionPrice,
					Quantity:   o.ExecutedQuantity,
					Amount:     o.SettlementAmount,
					CreatedAt:  o.CreatedAt,
					ExecutedAt: o.ExecutedAt,
				}
			}
		case o.Status == market.StatusCancelled || o.Status == market.StatusDeleted:
			s.CancelledOrders++
		}
		out[curr] = s
	}
	return out
}
