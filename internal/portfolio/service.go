package portfolio

import (
	"context"
	"strings"
	"time"

	"portview/internal/gateway/coinswitch"
	"portview/internal/logger"
	"portview/internal/market"
	symbolpkg "portview/internal/pkg/symbol"

	"golang.org/x/sync/errgroup"
)

// CandleFetcher supplies the ordered candle sequence for a window.
type CandleFetcher interface {
	FetchCandles(ctx context.Context, session string, req coinswitch.CandleRequest) ([]market.Candle, error)
}

// TradeFetcher supplies the full closed-orders history for a filter,
// pagination included.
type TradeFetcher interface {
	FetchClosedOrders(ctx context.Context, session string, q coinswitch.OrderQuery) ([]market.Trade, error)
}

// Request describes one series reconstruction. Times are Unix ms; Session is
// the opaque credential passed through to the remote API.
type Request struct {
	Symbol   string
	FromTime int64
	ToTime   int64
	Duration int
	Exchange string
	Session  string
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Symbol) == "" {
		return &InvalidInputError{Reason: "symbol is required"}
	}
	if strings.TrimSpace(r.Exchange) == "" {
		return &InvalidInputError{Reason: "exchange is required"}
	}
	if r.FromTime >= r.ToTime {
		return &InvalidInputError{Reason: "from_time must be before to_time"}
	}
	if r.Duration <= 0 {
		return &InvalidInputError{Reason: "candle duration must be positive"}
	}
	return nil
}

// Result carries the reconstructed series plus the candles it was built
// from; the candles are re-exposed so callers can chart price alongside.
type Result struct {
	Series  []Point         `json:"series"`
	Candles []market.Candle `json:"candles"`
}

// Service composes the two fetchers with the series builder. It holds no
// mutable state, so one instance serves concurrent requests.
type Service struct {
	candles CandleFetcher
	trades  TradeFetcher
}

func NewService(candles CandleFetcher, trades TradeFetcher) (*Service, error) {
	if candles == nil {
		return nil, &InvalidInputError{Reason: "candle fetcher is required"}
	}
	if trades == nil {
		return nil, &InvalidInputError{Reason: "trade fetcher is required"}
	}
	return &Service{candles: candles, trades: trades}, nil
}

// GenerateSeries fetches candles and trade history concurrently, then merges
// them into the portfolio series. All-or-nothing: any fetch or merge failure
// aborts the whole call. The caller's ctx deadline bounds everything,
// including every pagination round.
func (s *Service) GenerateSeries(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	filter, err := symbolpkg.PairFilter(req.Symbol)
	if err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}
	fromDate := time.UnixMilli(req.FromTime).UTC().Format("2006-01-02")
	toDate := time.UnixMilli(req.ToTime).UTC().Format("2006-01-02")

	var (
		candles []market.Candle
		trades  []market.Trade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candles, err = s.candles.FetchCandles(gctx, req.Session, coinswitch.CandleRequest{
			Symbol:   req.Symbol,
			FromTime: req.FromTime,
			ToTime:   req.ToTime,
			Duration: req.Duration,
			Exchange: req.Exchange,
		})
		return err
	})
	g.Go(func() error {
		var err error
		trades, err = s.trades.FetchClosedOrders(gctx, req.Session, coinswitch.OrderQuery{
			Currency: filter,
			FromDate: fromDate,
			ToDate:   toDate,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series, err := BuildSeries(candles, trades)
	if err != nil {
		return nil, err
	}
	logger.Infof("[portfolio] %s %s..%s: %d candle(s), %d trade(s)",
		req.Symbol, fromDate, toDate, len(candles), len(trades))
	return &Result{Series: series, Candles: candles}, nil
}
