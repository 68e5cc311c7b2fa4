package analytics

import (
	"testing"

	"portview/internal/market"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(currency, status string, side market.TradeSide, executedAt int64, qty, price, amount string) market.Trade {
	return market.Trade{
		ExecutedAt:        executedAt,
		Side:              side,
		Status:            status,
		Currency:          currency,
		ExecutedQuantity:  mustDec(qty),
		AvgExecutionPrice: mustDec(price),
		SettlementAmount:  mustDec(amount),
	}
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarize(t *testing.T) {
	orders := []market.Trade{
		order("btc", market.StatusExecuted, market.SideBuy, 1000, "2", "10", "20"),
		order("btc", market.StatusExecuted, market.SideBuy, 3000, "1", "12", "12"),
		order("btc", market.StatusExecuted, market.SideSell, 2000, "0.5", "11", "5.5"),
		order("btc", market.StatusCancelled, market.SideBuy, 4000, "0", "0", "0"),
		order("eth", market.StatusExecuted, market.SideSell, 1500, "3", "2", "6"),
	}

	got := Summarize(orders, "")
	require.Len(t, got, 2)

	btc := got["btc"]
	assert.Equal(t, 4, btc.OrderCount)
	assert.Equal(t, 3, btc.ExecutedOrders)
	assert.Equal(t, 1, btc.CancelledOrders)
	assert.Equal(t, "37.5", btc.TotalVolumeQuote.String())

	assert.Equal(t, 2, btc.Buys.Count)
	assert.Equal(t, "32", btc.Buys.VolumeQuote.String())
	assert.Equal(t, "3", btc.Buys.TotalQuantity.String())
	assert.Equal(t, "12", btc.Buys.AvgPrice.String())

	assert.Equal(t, 1, btc.Sells.Count)
	assert.Equal(t, "5.5", btc.Sells.VolumeQuote.String())

	require.NotNil(t, btc.LastTrade)
	assert.Equal(t, int64(3000), btc.LastTrade.ExecutedAt)
	assert.Equal(t, market.SideBuy, btc.LastTrade.Side)
	assert.Equal(t, "12", btc.LastTrade.Amount.String())

	eth := got["eth"]
	assert.Equal(t, 1, eth.OrderCount)
	assert.Equal(t, 1, eth.Sells.Count)
}

func TestSummarizeAssetFilter(t *testing.T) {
	orders := []market.Trade{
		order("btc", market.StatusExecuted, market.SideBuy, 1000, "1", "10", "10"),
		order("eth", market.StatusExecuted, market.SideBuy, 1000, "1", "10", "10"),
	}
	got := Summarize(orders, "BTC")
	require.Len(t, got, 1)
	assert.Contains(t, got, "btc")
}

func TestSummarizeSkipsUnknownStatusVolume(t *testing.T) {
	orders := []market.Trade{
		order("btc", "PENDING", market.SideBuy, 1000, "1", "10", "10"),
	}
	got := Summarize(orders, "")
	btc := got["btc"]
	assert.Equal(t, 1, btc.OrderCount)
	assert.Equal(t, 0, btc.ExecutedOrders)
	assert.Equal(t, 0, btc.CancelledOrders)
	assert.True(t, btc.TotalVolumeQuote.IsZero())
	assert.Nil(t, btc.LastTrade)
}
