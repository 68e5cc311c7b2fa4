package coinswitch

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portview/internal/logger"
	"portview/internal/market"
	"portview/internal/pkg/convert"
	symbolpkg "portview/internal/pkg/symbol"

	"github.com/tidwall/gjson"
)

// OrderQuery filters the closed-orders history. Currency is the pair filter
// in "asset,quote" form (see symbol.PairFilter); empty means all pairs.
// Dates are calendar days in YYYY-MM-DD form; empty means unbounded.
type OrderQuery struct {
	Currency string
	FromDate string
	ToDate   string
}

// FetchClosedOrders walks the closed-orders pages from 1 until the server
// returns an empty page, and returns every order normalized into a
// market.Trade. Order within a page is preserved; the result is otherwise
// unsorted. Pagination is sequential: a page's existence is only known once
// the prior one came back non-empty.
func (c *Client) FetchClosedOrders(ctx context.Context, session string, q OrderQuery) ([]market.Trade, error) {
	var out []market.Trade
	for page := 1; ; page++ {
		if page > c.cfg.MaxTradePages {
			return nil, &PaginationExhaustedError{Endpoint: closedOrdersPath, MaxPages: c.cfg.MaxTradePages}
		}
		vals := url.Values{}
		vals.Set("page", strconv.Itoa(page))
		if q.Currency != "" {
			vals.Set("currency", symbolpkg.WireFilter(q.Currency))
		}
		if q.FromDate != "" {
			vals.Set("from_date", q.FromDate)
		}
		if q.ToDate != "" {
			vals.Set("to_date", q.ToDate)
		}

		body, err := c.get(ctx, session, closedOrdersPath, page, vals)
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(body) {
			return nil, &MalformedResponseError{Endpoint: closedOrdersPath, Page: page, Reason: "body is not valid JSON"}
		}
		orders := gjson.GetBytes(body, "data.orders")
		if !orders.Exists() || !orders.IsArray() {
			return nil, &MalformedResponseError{Endpoint: closedOrdersPath, Page: page, Reason: "missing data.orders array"}
		}
		rows := orders.Array()
		if len(rows) == 0 {
			logger.Debugf("[coinswitch] closed-orders exhausted after %d page(s), %d order(s)", page-1, len(out))
			return out, nil
		}
		for _, row := range rows {
			trade, err := parseOrder(row, page)
			if err != nil {
				return nil, err
			}
			out = append(out, trade)
		}
	}
}

func parseOrder(row gjson.Result, page int) (market.Trade, error) {
	createdAt := row.Get("created_at").String()
	executedAt, err := parseOrderTime(createdAt)
	if err != nil {
		return market.Trade{}, &MalformedResponseError{
			Endpoint: closedOrdersPath,
			Page:     page,
			Reason:   "order with unparseable created_at " + strconv.Quote(createdAt),
		}
	}

	trade := market.Trade{
		ExecutedAt: executedAt,
		CreatedAt:  createdAt,
		Side:       market.TradeSide(strings.ToLower(row.Get("trade_type").String())),
		Status:     row.Get("order_execution_status").String(),
		Currency:   strings.ToLower(row.Get("destination_currency").String()),
	}
	// Numeric fields may be strings or numbers; absent means zero.
	if qty, ok := convert.Decimal(row.Get("executed_quantity")); ok {
		trade.ExecutedQuantity = qty
	}
	if avg, ok := convert.Decimal(row.Get("average_execution_price")); ok {
		trade.AvgExecutionPrice = avg
	}
	// Settlement amount: inr_amount wins over quote_amount when both exist.
	if amt, ok := convert.Decimal(row.Get("inr_amount")); ok {
		trade.SettlementAmount = amt
	} else if amt, ok := convert.Decimal(row.Get("quote_amount")); ok {
		trade.SettlementAmount = amt
	}
	return trade, nil
}

// parseOrderTime converts the ISO-8601 created_at (UTC "Z" suffix, optional
// fractional seconds) into Unix ms.
func parseOrderTime(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}
