package coinswitch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestFetchCandles(t *testing.T) {
	var gotPath, gotCookie, gotRequestID string
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		if c, err := r.Cookie("st"); err == nil {
			gotCookie = c.Value
		}
		gotRequestID = r.Header.Get("x-request-id")
		// close price arrives as a string for one row, a number for the other
		w.Write([]byte(`{"result":[
			{"close_time":1000,"c":"10.5","o":"9"},
			{"close_time":2000,"c":12}
		]}`))
	}))

	candles, err := client.FetchCandles(context.Background(), "sess-token", CandleRequest{
		Symbol: "BTCINR", FromTime: 1, ToTime: 9999, Duration: 60, Exchange: "coinswitchx",
	})
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, "/pro/api/v1/prograph/getDataForCandlestick", gotPath)
	assert.Equal(t, []string{"BTCINR"}, gotQuery["symbol"])
	assert.Equal(t, []string{"1"}, gotQuery["from_time"])
	assert.Equal(t, []string{"9999"}, gotQuery["to_time"])
	assert.Equal(t, []string{"60"}, gotQuery["c_duration"])
	assert.Equal(t, []string{"coinswitchx"}, gotQuery["exchange"])
	assert.Equal(t, "sess-token", gotCookie)
	assert.NotEmpty(t, gotRequestID)

	assert.Equal(t, int64(1000), candles[0].CloseTime)
	assert.Equal(t, "10.5", candles[0].Close.String())
	assert.Equal(t, int64(2000), candles[1].CloseTime)
	assert.Equal(t, "12", candles[1].Close.String())
}

func TestFetchCandlesMissingResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	_, err := client.FetchCandles(context.Background(), "s", CandleRequest{Symbol: "BTCINR"})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestFetchCandlesRemoteStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	_, err := client.FetchCandles(context.Background(), "s", CandleRequest{Symbol: "BTCINR"})
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadGateway, remote.Status)
	assert.Equal(t, "/pro/api/v1/prograph/getDataForCandlestick", remote.Endpoint)
}

type recordedCall struct {
	endpoint string
	page     int
	status   int
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) RecordCall(endpoint string, page, status int, _ time.Duration, _ []byte) {
	f.calls = append(f.calls, recordedCall{endpoint: endpoint, page: page, status: status})
}

func TestClientAuditsEveryCall(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[]}`))
	}))
	rec := &fakeRecorder{}
	client.SetAuditRecorder(rec)

	_, err := client.FetchCandles(context.Background(), "s", CandleRequest{Symbol: "BTCINR"})
	require.NoError(t, err)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, recordedCall{
		endpoint: "/pro/api/v1/prograph/getDataForCandlestick",
		page:     0,
		status:   http.StatusOK,
	}, rec.calls[0])
}
