package coinswitch

import (
	"context"

	"portview/internal/pkg/convert"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// FetchStrategyProfits returns the historical profit per algo-trading
// strategy. The endpoint is public, so no session is attached.
func (c *Client) FetchStrategyProfits(ctx context.Context) (map[string]decimal.Decimal, error) {
	body, err := c.get(ctx, "", strategiesPath, 0, nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, &MalformedResponseError{Endpoint: strategiesPath, Reason: "body is not valid JSON"}
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || !data.IsArray() {
		return nil, &MalformedResponseError{Endpoint: strategiesPath, Reason: "missing data array"}
	}

	profits := make(map[string]decimal.Decimal)
	for _, row := range data.Array() {
		strat := row.Get("Strategy")
		if !strat.Exists() {
			continue
		}
		name := strat.Get("name").String()
		if name == "" {
			continue
		}
		if profit, ok := convert.Decimal(strat.Get("historical_profit")); ok {
			profits[name] = profit
		}
	}
	return profits, nil
}
