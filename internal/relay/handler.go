package relay

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler serves GET /api/tickers. Every request performs a fresh upstream
// call. Failures are logged and answered with the empty dataset so clients
// always get the same shape.
func (r *Relay) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ds, err := r.GetAllTickerData(req.Context())
		if err != nil {
			r.logger.Warn("relay returned empty dataset", zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ds); err != nil {
			r.logger.Error("failed to write relay response", zap.Error(err))
		}
	})
}
