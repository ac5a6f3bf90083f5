package view

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Meo-4971/StockView/internal/indicator"
	"github.com/Meo-4971/StockView/internal/relay"
)

type Indicator string

const (
	Original Indicator = "Original Data"
	RSI      Indicator = "RSI"
	MACD     Indicator = "MACD"
)

// Indicators lists the choices in display order.
var Indicators = []Indicator{Original, RSI, MACD}

// ParseIndicator accepts the display names; empty means Original.
func ParseIndicator(s string) (Indicator, error) {
	switch Indicator(s) {
	case "", Original:
		return Original, nil
	case RSI, MACD:
		return Indicator(s), nil
	}
	return "", fmt.Errorf("unknown indicator %q", s)
}

// ErrNoData is returned when the date range leaves no rows.
var ErrNoData = errors.New("no rows in selected range")

// BaseColumns mirrors the relay bar fields.
var BaseColumns = []string{"close", "date", "high", "low", "open", "vol"}

// Query is one user selection.
type Query struct {
	Ticker    string
	Start     time.Time
	End       time.Time
	Indicator Indicator
}

// Row is a bar together with its parsed calendar date.
type Row struct {
	Date time.Time
	Bar  relay.PriceBar
}

// Table is the filtered rows of one ticker plus the selected indicator
// columns, all aligned by position.
type Table struct {
	Ticker    string
	Indicator Indicator
	Columns   []string
	Rows      []Row
	Dropped   int // bars whose date could not be parsed

	RSI  []float64
	MACD indicator.MACDSeries
}

// Filter keeps the bars dated within [start, end], both bounds inclusive,
// in their original order. Bars with an unparseable date are dropped and
// counted.
func Filter(bars []relay.PriceBar, start, end time.Time) (rows []Row, dropped int) {
	start, end = Day(start), Day(end)
	for _, b := range bars {
		d, err := ParseDate(b.Date)
		if err != nil {
			dropped++
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		rows = append(rows, Row{Date: d, Bar: b})
	}
	return rows, dropped
}

// Build filters bars and computes the indicator columns for q.
func Build(bars []relay.PriceBar, q Query) (*Table, error) {
	rows, dropped := Filter(bars, q.Start, q.End)
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	t := &Table{
		Ticker:    q.Ticker,
		Indicator: q.Indicator,
		Columns:   append([]string(nil), BaseColumns...),
		Rows:      rows,
		Dropped:   dropped,
	}

	closes := t.Closes()
	switch q.Indicator {
	case RSI:
		t.RSI = indicator.RSI(closes, indicator.RSIPeriod)
		t.Columns = append(t.Columns, "RSI")
	case MACD:
		t.MACD = indicator.MACD(closes, indicator.MACDFast, indicator.MACDSlow, indicator.MACDSignal)
		t.Columns = append(t.Columns, "MACD", "MACD_signal", "MACD_hist")
	}
	return t, nil
}

// BarSource is the read side of the session store.
type BarSource interface {
	Bars(ticker string) ([]relay.PriceBar, error)
	Err() error
}

// Resolve looks the ticker up in src and builds its table. A missing ticker
// is reported as the session load error when there is one, so the user sees
// why the list is empty.
func Resolve(src BarSource, q Query) (*Table, error) {
	bars, err := src.Bars(q.Ticker)
	if err != nil {
		if loadErr := src.Err(); loadErr != nil {
			return nil, loadErr
		}
		return nil, fmt.Errorf("%w: %q", err, q.Ticker)
	}
	return Build(bars, q)
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Closes() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Bar.Close
	}
	return out
}

// Values returns row i as cell values in Columns order. Undefined
// indicator values are nil.
func (t *Table) Values(i int) []any {
	r := t.Rows[i]
	out := []any{r.Bar.Close, r.Bar.Date, r.Bar.High, r.Bar.Low, r.Bar.Open, r.Bar.Vol}
	switch t.Indicator {
	case RSI:
		out = append(out, optional(t.RSI[i]))
	case MACD:
		out = append(out, optional(t.MACD.MACD[i]), optional(t.MACD.Signal[i]), optional(t.MACD.Hist[i]))
	}
	return out
}

// Cells returns row i formatted for display; undefined values are blank.
func (t *Table) Cells(i int) []string {
	vals := t.Values(i)
	out := make([]string, len(vals))
	for j, v := range vals {
		switch x := v.(type) {
		case nil:
			out[j] = ""
		case string:
			out[j] = x
		case float64:
			prec := -1
			if j >= len(BaseColumns) {
				prec = 4
			}
			out[j] = strconv.FormatFloat(x, 'f', prec, 64)
		}
	}
	out[1] = t.Rows[i].Date.Format(time.DateOnly)
	return out
}

func optional(v float64) any {
	if !indicator.Defined(v) {
		return nil
	}
	return v
}
