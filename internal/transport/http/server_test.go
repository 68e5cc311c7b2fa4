package transporthttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portview/internal/gateway/coinswitch"
	"portview/internal/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// newTestServer wires the whole stack against a fake upstream API.
func newTestServer(t *testing.T, upstream http.Handler) *Server {
	t.Helper()
	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	client, err := coinswitch.NewClient(coinswitch.Config{BaseURL: api.URL})
	require.NoError(t, err)
	svc, err := portfolio.NewService(client, client)
	require.NoError(t, err)
	server, err := NewServer(ServerConfig{
		Addr:           ":0",
		Portfolio:      svc,
		Gateway:        client,
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return server
}

func fakeUpstream() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "getDataForCandlestick"):
			w.Write([]byte(`{"result":[{"close_time":1000,"c":"10"},{"close_time":2000,"c":"12"}]}`))
		case strings.Contains(r.URL.Path, "closed-orders"):
			if r.URL.Query().Get("page") == "1" {
				w.Write([]byte(`{"data":{"orders":[{"created_at":"1970-01-01T00:00:00.500Z","trade_type":"buy","executed_quantity":"2","average_execution_price":"10","inr_amount":"20","order_execution_status":"EXECUTED","destination_currency":"BTC"}]}}`))
				return
			}
			w.Write([]byte(`{"data":{"orders":[]}}`))
		case strings.Contains(r.URL.Path, "all-strategies"):
			w.Write([]byte(`{"data":[{"Strategy":{"name":"momentum","historical_profit":"12.4"}}]}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func doGet(server *Server, target string, withToken bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withToken {
		req.AddCookie(&http.Cookie{Name: "st", Value: "sess"})
	}
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

const seriesURL = "/api/v1/portfolio/series?symbol=BTCINR&from_time=1&to_time=86400000&c_duration=60&exchange=coinswitchx"

func TestHealthz(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, "/healthz", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSeriesEndToEnd(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, seriesURL, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	series := gjson.Get(body, "series")
	require.True(t, series.IsArray())
	require.Len(t, series.Array(), 2)

	first := series.Array()[0]
	assert.Equal(t, int64(1000), first.Get("timestamp").Int())
	assert.Equal(t, float64(-20), first.Get("cash").Num)
	assert.Equal(t, float64(2), first.Get("asset").Num)
	assert.Equal(t, float64(20), first.Get("asset_value").Num)
	assert.Equal(t, float64(0), first.Get("total").Num)

	second := series.Array()[1]
	assert.Equal(t, float64(24), second.Get("asset_value").Num)
	assert.Equal(t, float64(4), second.Get("total").Num)

	candles := gjson.Get(body, "candles")
	require.Len(t, candles.Array(), 2)
	assert.Equal(t, int64(1000), candles.Array()[0].Get("close_time").Int())
	assert.Equal(t, float64(10), candles.Array()[0].Get("close").Num)
}

func TestSeriesRequiresSession(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, seriesURL, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSeriesRejectsBadParams(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, "/api/v1/portfolio/series?symbol=BTCINR", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeriesRejectsInvertedWindow(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, "/api/v1/portfolio/series?symbol=BTCINR&from_time=5000&to_time=1000&c_duration=60&exchange=x", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeriesMapsUpstreamFailure(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	w := doGet(server, seriesURL, true)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSeriesPassesThroughUpstreamAuthFailure(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusUnauthorized)
	}))
	w := doGet(server, seriesURL, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChartRendersHTML(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, "/api/v1/portfolio/chart?symbol=BTCINR&from_time=1&to_time=86400000&c_duration=60&exchange=coinswitchx", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "echarts")
}

func TestTradingSummary(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, "/api/v1/trading/summary?symbol=btc", true)
	require.Equal(t, http.StatusOK, w.Code)
	summary := gjson.Get(w.Body.String(), "summary.btc")
	require.True(t, summary.Exists())
	assert.Equal(t, int64(1), summary.Get("executed_orders").Int())
}

func TestStrategyProfits(t *testing.T) {
	server := newTestServer(t, fakeUpstream())
	w := doGet(server, "/api/v1/strategies/profits", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12.4", gjson.Get(w.Body.String(), "profits.momentum").String())
}
