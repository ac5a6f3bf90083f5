package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/Meo-4971/StockView/internal/metrics"
	"github.com/Meo-4971/StockView/pkg/stocktraders"

	"go.uber.org/zap"
)

// Upstream is the part of the provider client the relay needs.
type Upstream interface {
	GetTotalTrade(ctx context.Context) (*stocktraders.TotalTradeReply, error)
}

// Relay fetches the provider's trade history and reshapes it per ticker.
// It keeps nothing between calls.
type Relay struct {
	upstream Upstream
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func New(upstream Upstream, m *metrics.Metrics, logger *zap.Logger) *Relay {
	return &Relay{upstream: upstream, metrics: m, logger: logger}
}

// GetAllTickerData performs one upstream call and returns the flattened dataset.
// On failure it returns the empty dataset together with an error wrapping
// ErrUpstreamUnreachable or ErrUpstreamMalformed; the dataset is never nil.
func (r *Relay) GetAllTickerData(ctx context.Context) (*TickerDataset, error) {
	reply, err := r.upstream.GetTotalTrade(ctx)
	if err != nil {
		if errors.Is(err, stocktraders.ErrMalformedReply) {
			r.metrics.UpstreamFetch(metrics.OutcomeMalformed)
			return EmptyDataset(), fmt.Errorf("%w: %w", ErrUpstreamMalformed, err)
		}
		r.metrics.UpstreamFetch(metrics.OutcomeUnreachable)
		return EmptyDataset(), fmt.Errorf("%w: %w", ErrUpstreamUnreachable, err)
	}
	r.metrics.UpstreamFetch(metrics.OutcomeOK)

	ds := Flatten(reply)
	r.logger.Info("fetched ticker data", zap.Int("tickers", len(ds.Tickers)))
	return ds, nil
}

// Flatten projects every stock total onto PriceBars keyed by ticker.
// An empty ticker is kept under the empty key. A repeated ticker keeps its
// first position in Tickers and takes the later entry's bars.
func Flatten(reply *stocktraders.TotalTradeReply) *TickerDataset {
	ds := EmptyDataset()
	if reply == nil {
		return ds
	}

	for _, st := range reply.StockTotals {
		bars := make([]PriceBar, 0, len(st.TotalDatas))
		for _, td := range st.TotalDatas {
			bars = append(bars, PriceBar{
				Close: float64(td.Close),
				Date:  string(td.Date),
				High:  float64(td.High),
				Low:   float64(td.Low),
				Open:  float64(td.Open),
				Vol:   float64(td.Vol),
			})
		}

		if _, seen := ds.StockData[st.Ticker]; !seen {
			ds.Tickers = append(ds.Tickers, st.Ticker)
		}
		ds.StockData[st.Ticker] = bars
	}
	return ds
}
