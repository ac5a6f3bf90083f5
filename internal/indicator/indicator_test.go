package indicator

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
)

func risingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func zigzagCloses(n int) []float64 {
	out := make([]float64, n)
	p := 50.0
	for i := range out {
		switch i % 5 {
		case 0, 1, 3:
			p += 1.5
		default:
			p -= 2.25
		}
		out[i] = p
	}
	return out
}

// go test -v --run TestRSIWindow
func TestRSIWindow(t *testing.T) {
	rsi := RSI(risingCloses(20), RSIPeriod)
	if len(rsi) != 20 {
		t.Fatalf("expected 20 values, got %d", len(rsi))
	}
	for i, v := range rsi {
		if i < RSIPeriod {
			if Defined(v) {
				t.Errorf("index %d should be undefined, got %f", i, v)
			}
			continue
		}
		if !Defined(v) {
			t.Fatalf("index %d should be defined", i)
		}
		if v > 100 || v < 0 {
			t.Errorf("index %d out of range: %f", i, v)
		}
	}
	// Only gains: RSI saturates.
	if math.Abs(rsi[19]-100) > 1e-9 {
		t.Errorf("expected 100 for rising closes, got %f", rsi[19])
	}
}

// go test -v --run TestRSIBounded
func TestRSIBounded(t *testing.T) {
	for _, v := range RSI(zigzagCloses(200), RSIPeriod) {
		if Defined(v) && (v < 0 || v > 100) {
			t.Fatalf("RSI out of [0,100]: %f", v)
		}
	}
}

// go test -v --run TestRSIShortInput
func TestRSIShortInput(t *testing.T) {
	for _, n := range []int{0, 1, 14} {
		for _, v := range RSI(risingCloses(n), RSIPeriod) {
			if Defined(v) {
				t.Errorf("n=%d: expected all undefined", n)
			}
		}
	}
}

// go test -v --run TestMACDHistogram
func TestMACDHistogram(t *testing.T) {
	closes := zigzagCloses(120)
	s := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	lineStart := MACDLineLookback(MACDFast, MACDSlow)
	lookback := MACDLookback(MACDFast, MACDSlow, MACDSignal)

	if len(s.MACD) != 120 || len(s.Signal) != 120 || len(s.Hist) != 120 {
		t.Fatal("series must match input length")
	}
	for i := range closes {
		if i < lookback {
			if Defined(s.MACD[i]) != (i >= lineStart) {
				t.Errorf("index %d: macd defined=%v", i, Defined(s.MACD[i]))
			}
			if Defined(s.Signal[i]) || Defined(s.Hist[i]) {
				t.Errorf("index %d: signal and hist should be undefined", i)
			}
			continue
		}
		if !Defined(s.MACD[i]) || !Defined(s.Signal[i]) {
			t.Fatalf("index %d should be defined", i)
		}
		if s.Hist[i] != s.MACD[i]-s.Signal[i] {
			t.Errorf("index %d: hist %f != macd-signal %f", i, s.Hist[i], s.MACD[i]-s.Signal[i])
		}
	}
}

// go test -v --run TestMACDLineBeforeSignal
func TestMACDLineBeforeSignal(t *testing.T) {
	closes := zigzagCloses(60)
	s := MACD(closes, MACDFast, MACDSlow, MACDSignal)

	if MACDLineLookback(MACDFast, MACDSlow) != 25 || MACDLookback(MACDFast, MACDSlow, MACDSignal) != 33 {
		t.Fatal("unexpected lookbacks for MACD(12,26,9)")
	}
	if Defined(s.MACD[24]) || !Defined(s.MACD[25]) {
		t.Errorf("macd line should start at 25: [24]=%f [25]=%f", s.MACD[24], s.MACD[25])
	}
	if Defined(s.Signal[25]) || Defined(s.Signal[32]) || !Defined(s.Signal[33]) {
		t.Errorf("signal should start at 33")
	}

	// The line matches talib's own MACD output wherever that is populated.
	line, _, _ := talib.Macd(closes, MACDFast, MACDSlow, MACDSignal)
	for i := 33; i < len(closes); i++ {
		if math.Abs(s.MACD[i]-line[i]) > 1e-9 {
			t.Errorf("index %d: macd %f, talib %f", i, s.MACD[i], line[i])
		}
	}

	// 26 closes are enough for the last line value only.
	short := MACD(closes[:26], MACDFast, MACDSlow, MACDSignal)
	if !Defined(short.MACD[25]) || Defined(short.Signal[25]) {
		t.Errorf("26 closes: macd %f signal %f", short.MACD[25], short.Signal[25])
	}
}

// go test -v --run TestMACDShortInput
func TestMACDShortInput(t *testing.T) {
	s := MACD(risingCloses(20), MACDFast, MACDSlow, MACDSignal)
	for i := range s.MACD {
		if Defined(s.MACD[i]) || Defined(s.Signal[i]) || Defined(s.Hist[i]) {
			t.Fatalf("20 bars cannot fill MACD(12,26,9), index %d defined", i)
		}
	}
}
