// Package indicator computes RSI and MACD series over close prices.
//
// The math is go-talib's. Positions where the smoothing window has not
// filled yet are NaN, so every series has the same length as its input and
// lines up with the rows it was computed from.
package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
)

const (
	RSIPeriod = 14

	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDSeries holds the three MACD outputs, aligned with the input closes.
type MACDSeries struct {
	MACD   []float64
	Signal []float64
	Hist   []float64
}

// RSI returns the Wilder RSI of closes. The first period values are NaN.
func RSI(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period < 2 || len(closes) <= period {
		return out
	}

	rsi := talib.Rsi(closes, period)
	for i := period; i < len(closes); i++ {
		out[i] = clamp(rsi[i], 0, 100)
	}
	return out
}

// MACD returns MACD(fast, slow, signal) of closes. The MACD line is defined
// once the slow EMA has filled; signal and histogram only once the signal
// window has filled on top of that. Earlier positions are NaN.
func MACD(closes []float64, fast, slow, signal int) MACDSeries {
	n := len(closes)
	s := MACDSeries{MACD: nanSeries(n), Signal: nanSeries(n), Hist: nanSeries(n)}
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return s
	}
	if slow < fast {
		fast, slow = slow, fast
	}

	lineStart := MACDLineLookback(fast, slow)
	if n <= lineStart {
		return s
	}
	fastEMA := talib.Ema(closes, fast)
	slowEMA := talib.Ema(closes, slow)
	for i := lineStart; i < n; i++ {
		s.MACD[i] = fastEMA[i] - slowEMA[i]
	}

	lookback := MACDLookback(fast, slow, signal)
	if n <= lookback {
		return s
	}
	_, sig, _ := talib.Macd(closes, fast, slow, signal)
	for i := lookback; i < n; i++ {
		s.Signal[i] = sig[i]
		s.Hist[i] = s.MACD[i] - sig[i]
	}
	return s
}

// MACDLineLookback is the index of the first defined MACD line value.
func MACDLineLookback(fast, slow int) int {
	return max(fast, slow) - 1
}

// MACDLookback is the index of the first defined signal and histogram value.
func MACDLookback(fast, slow, signal int) int {
	return MACDLineLookback(fast, slow) + (signal - 1)
}

// Defined reports whether v carries a value.
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return v
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
