package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Meo-4971/StockView/pkg/stocktraders"

	"go.uber.org/zap"
)

func newTestRelay(t *testing.T, status int, body string) *Relay {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	client := stocktraders.NewRESTClient(srv.URL, stocktraders.DefaultAccount, 0)
	return New(client, nil, zap.NewNop())
}

func upstreamBody(tickers ...string) string {
	var entries []string
	for i, tk := range tickers {
		entries = append(entries, fmt.Sprintf(
			`{"ticker":%q,"totalDatas":[{"close":%d,"date":"2023-01-0%d","high":2,"low":1,"open":1.5,"vol":100,"extra":"drop me"}]}`,
			tk, i+1, i+1))
	}
	return `{"TotalTradeReply":{"stockTotals":[` + strings.Join(entries, ",") + `]}}`
}

// go test -v --run TestGetAllTickerData
func TestGetAllTickerData(t *testing.T) {
	r := newTestRelay(t, http.StatusCreated, upstreamBody("AAA", "BBB", "CCC"))

	ds, err := r.GetAllTickerData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Tickers) != 3 || len(ds.StockData) != 3 {
		t.Fatalf("expected 3 tickers and 3 keys, got %d/%d", len(ds.Tickers), len(ds.StockData))
	}
	for i, tk := range []string{"AAA", "BBB", "CCC"} {
		if ds.Tickers[i] != tk {
			t.Errorf("ticker %d: got %s want %s", i, ds.Tickers[i], tk)
		}
		bars := ds.StockData[tk]
		if len(bars) != 1 || bars[0].Close != float64(i+1) {
			t.Errorf("bars for %s: %+v", tk, bars)
		}
	}

	// Only the six projected fields survive re-serialisation.
	raw, _ := json.Marshal(ds.StockData["AAA"][0])
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)
	if len(fields) != 6 {
		t.Errorf("expected 6 fields, got %v", fields)
	}
	for _, k := range []string{"close", "date", "high", "low", "open", "vol"} {
		if _, ok := fields[k]; !ok {
			t.Errorf("missing field %s", k)
		}
	}
}

// go test -v --run TestGetAllTickerDataFailures
func TestGetAllTickerDataFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"status 200", http.StatusOK, upstreamBody("AAA"), ErrUpstreamUnreachable},
		{"status 500", http.StatusInternalServerError, "boom", ErrUpstreamUnreachable},
		{"missing keys", http.StatusCreated, `{"reply":{}}`, ErrUpstreamMalformed},
		{"garbage", http.StatusCreated, `not json`, ErrUpstreamMalformed},
		{"nan close", http.StatusCreated, `{"TotalTradeReply":{"stockTotals":[{"ticker":"AAA","totalDatas":[{"close":"NaN","date":"2023-01-02"}]}]}}`, ErrUpstreamMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRelay(t, tt.status, tt.body)
			ds, err := r.GetAllTickerData(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			raw, _ := json.Marshal(ds)
			if string(raw) != `{"tickers":[],"stock_data":{}}` {
				t.Errorf("expected empty dataset, got %s", raw)
			}
		})
	}
}

// go test -v --run TestStatusErrorIsReachable
func TestStatusErrorIsReachable(t *testing.T) {
	r := newTestRelay(t, http.StatusBadGateway, "")
	_, err := r.GetAllTickerData(context.Background())
	var se *stocktraders.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Fatalf("expected wrapped StatusError 502, got %v", err)
	}
}

// go test -v --run TestFlatten
func TestFlatten(t *testing.T) {
	reply := &stocktraders.TotalTradeReply{StockTotals: []stocktraders.StockTotal{
		{Ticker: "AAA", TotalDatas: []stocktraders.TotalData{{Close: 1}}},
		{Ticker: "", TotalDatas: []stocktraders.TotalData{{Close: 9}}},
		{Ticker: "BBB"},
		{Ticker: "AAA", TotalDatas: []stocktraders.TotalData{{Close: 2}, {Close: 3}}},
	}}

	ds := Flatten(reply)
	if strings.Join(ds.Tickers, ",") != "AAA,,BBB" {
		t.Errorf("unexpected tickers %v", ds.Tickers)
	}
	if got := ds.StockData["AAA"]; len(got) != 2 || got[0].Close != 2 {
		t.Errorf("duplicate ticker should take later bars: %+v", got)
	}
	if got, ok := ds.StockData["BBB"]; !ok || got == nil || len(got) != 0 {
		t.Errorf("ticker without bars should map to an empty list: %+v", got)
	}
	if got, ok := ds.StockData[""]; !ok || len(got) != 1 || got[0].Close != 9 {
		t.Errorf("empty ticker should be kept under the empty key: %+v", got)
	}

	if _, err := ds.Bars("ZZZ"); !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("expected ErrTickerNotFound, got %v", err)
	}
}

// go test -v --run TestHandler
func TestHandler(t *testing.T) {
	r := newTestRelay(t, http.StatusCreated, upstreamBody("AAA"))
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tickers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var ds TickerDataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		t.Fatal(err)
	}
	if len(ds.Tickers) != 1 || ds.Tickers[0] != "AAA" {
		t.Errorf("unexpected payload %+v", ds)
	}

	post, err := http.Post(srv.URL+"/api/tickers", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST should be rejected, got %d", post.StatusCode)
	}
}

// go test -v --run TestHandlerEmptyOnFailure
func TestHandlerEmptyOnFailure(t *testing.T) {
	r := newTestRelay(t, http.StatusServiceUnavailable, "")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tickers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"tickers":[],"stock_data":{}}` {
		t.Errorf("unexpected body %s", got)
	}
}
