package market

import "github.com/shopspring/decimal"

type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// Execution statuses as reported by the closed-orders endpoint.
const (
	StatusExecuted  = "EXECUTED"
	StatusCancelled = "CANCELLED"
	StatusDeleted   = "DELETED"
)

// Trade is one record from the closed-orders history, normalized at the
// gateway boundary: timestamps converted to Unix ms and the settlement amount
// resolved to a single field regardless of which response variant carried it.
type Trade struct {
	ExecutedAt int64 // Unix ms, derived from created_at
	CreatedAt  string
	Side       TradeSide
	Status     string
	Currency   string // traded asset, lower-cased

	ExecutedQuantity  decimal.Decimal
	AvgExecutionPrice decimal.Decimal
	// SettlementAmount is the quote-currency value actually moved; sourced
	// from inr_amount or quote_amount, whichever the response carries.
	SettlementAmount decimal.Decimal
}

// Executed reports whether the order actually traded.
func (t Trade) Executed() bool { return t.Status == StatusExecuted }
