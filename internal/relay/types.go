package relay

// PriceBar is one trading day of one ticker, restricted to the six fields
// the relay forwards.
type PriceBar struct {
	Close float64 `json:"close"`
	Date  string  `json:"date"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Open  float64 `json:"open"`
	Vol   float64 `json:"vol"`
}

// TickerDataset is the relay payload. Tickers keeps the upstream order and
// StockData holds exactly one entry per listed ticker.
type TickerDataset struct {
	Tickers   []string              `json:"tickers"`
	StockData map[string][]PriceBar `json:"stock_data"`
}

// EmptyDataset returns a dataset that encodes as {"tickers":[],"stock_data":{}}.
func EmptyDataset() *TickerDataset {
	return &TickerDataset{
		Tickers:   []string{},
		StockData: map[string][]PriceBar{},
	}
}

// Bars returns the bars of ticker or ErrTickerNotFound.
func (d *TickerDataset) Bars(ticker string) ([]PriceBar, error) {
	bars, ok := d.StockData[ticker]
	if !ok {
		return nil, ErrTickerNotFound
	}
	return bars, nil
}
