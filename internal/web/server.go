// Package web serves the StockView session: the HTML page, chart images,
// the session socket, the relay endpoint and metrics.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Meo-4971/StockView/internal/chart"
	"github.com/Meo-4971/StockView/internal/metrics"
	"github.com/Meo-4971/StockView/internal/relay"
	"github.com/Meo-4971/StockView/internal/session"
	"github.com/Meo-4971/StockView/internal/view"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Store   *session.Store
	Relay   *relay.Relay // serves /api/tickers when set
	Metrics *metrics.Metrics
	Logger  *zap.Logger

	DefaultStart time.Time
	DefaultEnd   time.Time
}

type Server struct {
	store   *session.Store
	relay   *relay.Relay
	metrics *metrics.Metrics
	logger  *zap.Logger

	defaultStart time.Time
	defaultEnd   time.Time
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = session.NewStore()
	}
	return &Server{
		store:        store,
		relay:        opts.Relay,
		metrics:      opts.Metrics,
		logger:       logger,
		defaultStart: opts.DefaultStart,
		defaultEnd:   opts.DefaultEnd,
	}
}

// Handler returns the routed mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/chart.png", s.handleChart)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", s.metrics.Handler())
	if s.relay != nil {
		mux.Handle("/api/tickers", s.relay.Handler())
	}
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// selection is the raw user choice as it arrives from a form or the socket.
type selection struct {
	Ticker    string `json:"ticker"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Indicator string `json:"indicator"`
}

func selectionFromValues(v url.Values) selection {
	return selection{
		Ticker:    v.Get("ticker"),
		Start:     v.Get("start"),
		End:       v.Get("end"),
		Indicator: v.Get("indicator"),
	}
}

func (sel selection) values() url.Values {
	v := url.Values{}
	v.Set("ticker", sel.Ticker)
	v.Set("start", sel.Start)
	v.Set("end", sel.End)
	v.Set("indicator", sel.Indicator)
	return v
}

// query fills the defaults into sel and parses it. The returned selection is
// the normalized form, suitable for echoing back to the user.
func (s *Server) query(sel selection) (view.Query, selection, error) {
	sel.Ticker = strings.TrimSpace(sel.Ticker)
	if sel.Ticker == "" {
		if tickers := s.store.Tickers(); len(tickers) > 0 {
			sel.Ticker = tickers[0]
		}
	}
	if sel.Start == "" {
		sel.Start = s.defaultStart.Format(time.DateOnly)
	}
	if sel.End == "" {
		sel.End = s.defaultEnd.Format(time.DateOnly)
	}

	ind, err := view.ParseIndicator(sel.Indicator)
	if err != nil {
		return view.Query{}, sel, err
	}
	sel.Indicator = string(ind)

	start, err := time.Parse(time.DateOnly, sel.Start)
	if err != nil {
		return view.Query{}, sel, fmt.Errorf("invalid start date %q", sel.Start)
	}
	end, err := time.Parse(time.DateOnly, sel.End)
	if err != nil {
		return view.Query{}, sel, fmt.Errorf("invalid end date %q", sel.End)
	}

	return view.Query{Ticker: sel.Ticker, Start: start, End: end, Indicator: ind}, sel, nil
}

// resolve builds the table for q and logs the failure kinds that are not
// plain user selections.
func (s *Server) resolve(q view.Query) (*view.Table, error) {
	table, err := view.Resolve(s.store, q)
	if err != nil {
		if !errors.Is(err, view.ErrNoData) {
			s.logger.Warn("view unavailable",
				zap.String("ticker", q.Ticker),
				zap.String("indicator", string(q.Indicator)),
				zap.Error(err))
		}
		return nil, err
	}
	if table.Dropped > 0 {
		s.logger.Debug("dropped bars with unparseable dates",
			zap.String("ticker", q.Ticker), zap.Int("dropped", table.Dropped))
	}
	s.metrics.View(string(q.Indicator))
	return table, nil
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q, _, err := s.query(selectionFromValues(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	table, err := view.Resolve(s.store, q)
	if err != nil {
		http.Error(w, view.Message(err), chartStatus(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := chart.Render(w, table, chart.DefaultWidth, chart.DefaultHeight); err != nil {
		s.logger.Error("failed to render chart", zap.String("ticker", q.Ticker), zap.Error(err))
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}
	s.metrics.Chart(string(q.Indicator))
}

func chartStatus(err error) int {
	switch {
	case errors.Is(err, view.ErrNoData), errors.Is(err, relay.ErrTickerNotFound):
		return http.StatusNotFound
	case errors.Is(err, relay.ErrUpstreamUnreachable), errors.Is(err, relay.ErrUpstreamMalformed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
