package coinswitch

import (
	"context"
	"net/url"
	"strconv"

	"portview/internal/market"
	"portview/internal/pkg/convert"

	"github.com/tidwall/gjson"
)

// CandleRequest describes one candlestick fetch. Times are Unix ms and
// Duration is the candle length the remote understands (minutes).
type CandleRequest struct {
	Symbol   string
	FromTime int64
	ToTime   int64
	Duration int
	Exchange string
}

// FetchCandles returns the candle sequence for the request, ordered ascending
// by close time as delivered by the endpoint. A single request, no paging.
func (c *Client) FetchCandles(ctx context.Context, session string, req CandleRequest) ([]market.Candle, error) {
	q := url.Values{}
	q.Set("symbol", req.Symbol)
	q.Set("from_time", strconv.FormatInt(req.FromTime, 10))
	q.Set("to_time", strconv.FormatInt(req.ToTime, 10))
	q.Set("c_duration", strconv.Itoa(req.Duration))
	q.Set("exchange", req.Exchange)

	body, err := c.get(ctx, session, candlestickPath, 0, q)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, &MalformedResponseError{Endpoint: candlestickPath, Reason: "body is not valid JSON"}
	}
	result := gjson.GetBytes(body, "result")
	if !result.Exists() || !result.IsArray() {
		return nil, &MalformedResponseError{Endpoint: candlestickPath, Reason: "missing result array"}
	}

	rows := result.Array()
	out := make([]market.Candle, 0, len(rows))
	for _, row := range rows {
		closeTime, ok := convert.Int64(row.Get("close_time"))
		if !ok {
			return nil, &MalformedResponseError{Endpoint: candlestickPath, Reason: "candle without close_time"}
		}
		closePrice, ok := convert.Decimal(row.Get("c"))
		if !ok {
			return nil, &MalformedResponseError{Endpoint: candlestickPath, Reason: "candle without close price"}
		}
		out = append(out, market.Candle{CloseTime: closeTime, Close: closePrice})
	}
	return out, nil
}
