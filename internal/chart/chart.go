// Package chart renders a view.Table as a PNG.
//
// Bars are placed at their row index on the x axis and labelled with their
// date, so gaps (weekends, holidays) do not leave holes and unsorted
// upstream data still draws left to right in row order.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/Meo-4971/StockView/internal/indicator"
	"github.com/Meo-4971/StockView/internal/view"

	"github.com/montanaflynn/stats"
	"github.com/pplcc/plotext/custplotter"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 7 * vg.Inch

	maxTicks = 8

	// Share of the height given to the price panel in the RSI chart.
	pricePanelShare = 0.7
)

var ErrEmptyTable = errors.New("chart needs at least one row")

// Render draws the chart for t's indicator and writes it to w as PNG.
func Render(w io.Writer, t *view.Table, width, height vg.Length) error {
	if t == nil || t.Len() == 0 {
		return ErrEmptyTable
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)

	var err error
	switch t.Indicator {
	case view.RSI:
		err = drawRSI(dc, t)
	case view.MACD:
		err = drawMACD(dc, t)
	default:
		err = drawCandles(dc, t)
	}
	if err != nil {
		return err
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func drawCandles(dc draw.Canvas, t *view.Table) error {
	p, err := pricePlot(t, dc.Max.X-dc.Min.X)
	if err != nil {
		return err
	}
	p.Title.Text = fmt.Sprintf("%s Candlestick Chart", t.Ticker)
	p.X.Label.Text = "Date"
	p.Draw(dc)
	return nil
}

func drawRSI(dc draw.Canvas, t *view.Table) error {
	price, err := pricePlot(t, dc.Max.X-dc.Min.X)
	if err != nil {
		return err
	}
	price.Title.Text = fmt.Sprintf("%s Candlestick Chart with RSI", t.Ticker)

	rsi := plot.New()
	rsi.Title.Text = "RSI"
	rsi.X.Label.Text = "Date"
	rsi.Y.Label.Text = "RSI"
	rsi.Y.Min, rsi.Y.Max = 0, 100
	setDateAxis(rsi, t)
	rsi.Add(newGrid())

	line, err := seriesLine(t.RSI, Blue)
	if err != nil {
		return fmt.Errorf("rsi line: %w", err)
	}
	if line != nil {
		rsi.Add(line)
		rsi.Legend.Add("RSI", line)
	}

	split := dc.Min.Y + (dc.Max.Y-dc.Min.Y)*(1-pricePanelShare)
	lower, upper := dc, dc
	lower.Max.Y = split
	upper.Min.Y = split

	price.Draw(upper)
	rsi.Draw(lower)
	return nil
}

func drawMACD(dc draw.Canvas, t *view.Table) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s MACD", t.Ticker)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price"
	setDateAxis(p, t)
	p.Add(newGrid())

	hist := make(plotter.Values, t.Len())
	for i, v := range t.MACD.Hist {
		if indicator.Defined(v) {
			hist[i] = v
		}
	}
	bars, err := plotter.NewBarChart(hist, barWidth(dc.Max.X-dc.Min.X, t.Len()))
	if err != nil {
		return fmt.Errorf("macd histogram: %w", err)
	}
	bars.Color = Red
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.Legend.Add("MACD Histogram", bars)

	for _, s := range []struct {
		name   string
		values []float64
		color  color.Color
	}{
		{"MACD", t.MACD.MACD, Red},
		{"MACD_Signal", t.MACD.Signal, Blue},
	} {
		line, err := seriesLine(s.values, s.color)
		if err != nil {
			return fmt.Errorf("%s line: %w", s.name, err)
		}
		if line != nil {
			p.Add(line)
			p.Legend.Add(s.name, line)
		}
	}

	p.Draw(dc)
	return nil
}

// pricePlot builds the candlestick panel, scaled to the rows' low/high.
func pricePlot(t *view.Table, width vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "Price"
	setDateAxis(p, t)
	p.Add(newGrid())

	sticks, err := custplotter.NewCandlesticks(candles(t.Rows))
	if err != nil {
		return nil, fmt.Errorf("candlesticks: %w", err)
	}
	sticks.ColorUp = Green
	sticks.ColorDown = Red
	sticks.CandleWidth = barWidth(width, t.Len())
	p.Add(sticks)

	lows := make(stats.Float64Data, t.Len())
	highs := make(stats.Float64Data, t.Len())
	for i, r := range t.Rows {
		lows[i], highs[i] = r.Bar.Low, r.Bar.High
	}
	lo, err := stats.Min(lows)
	if err != nil {
		return nil, err
	}
	hi, err := stats.Max(highs)
	if err != nil {
		return nil, err
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	p.Y.Min, p.Y.Max = lo-pad, hi+pad
	return p, nil
}

// seriesLine draws the defined points of values at their row index.
// It returns nil when nothing is defined yet.
func seriesLine(values []float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if indicator.Defined(v) {
			pts = append(pts, plotter.XY{X: float64(i), Y: v})
		}
	}
	if len(pts) == 0 {
		return nil, nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = W1
	return line, nil
}

// setDateAxis spans the row indexes and labels at most maxTicks of them.
func setDateAxis(p *plot.Plot, t *view.Table) {
	n := t.Len()
	p.X.Min, p.X.Max = -1, float64(n)

	step := (n + maxTicks - 1) / maxTicks
	if step < 1 {
		step = 1
	}
	var ticks plot.ConstantTicks
	for i := 0; i < n; i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: t.Rows[i].Date.Format(time.DateOnly)})
	}
	p.X.Tick.Marker = ticks
}

func barWidth(width vg.Length, n int) vg.Length {
	w := width * 0.6 / vg.Length(n+1)
	if w < W1 {
		w = W1
	}
	return w
}

// candles adapts view rows to custplotter's TOHLCVer, with T as the row index.
type candles []view.Row

func (c candles) Len() int { return len(c) }

func (c candles) TOHLCV(i int) (float64, float64, float64, float64, float64, float64) {
	b := c[i].Bar
	return float64(i), b.Open, b.High, b.Low, b.Close, b.Vol
}
