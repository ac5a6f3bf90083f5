package stocktraders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TotalTradeRequest is the request envelope of getTotalTrade.
type TotalTradeRequest struct {
	TotalTradeRequest struct {
		Account string `json:"account"`
	} `json:"TotalTradeRequest"`
}

// NewTotalTradeRequest builds the request body for the given account.
func NewTotalTradeRequest(account string) TotalTradeRequest {
	var r TotalTradeRequest
	r.TotalTradeRequest.Account = account
	return r
}

// TotalTradeResponse is the response envelope. Both levels are pointers or
// nil-able slices so that a missing key can be told apart from an empty list.
type TotalTradeResponse struct {
	TotalTradeReply *TotalTradeReply `json:"TotalTradeReply"`
}

type TotalTradeReply struct {
	StockTotals []StockTotal `json:"stockTotals"`
}

// StockTotal is the trade history of one ticker.
type StockTotal struct {
	Ticker     string      `json:"ticker"`
	TotalDatas []TotalData `json:"totalDatas"`
}

// TotalData is one trading day. The service sends more fields than these;
// they are dropped on decode.
type TotalData struct {
	Close FlexFloat  `json:"close"`
	Date  FlexString `json:"date"`
	High  FlexFloat  `json:"high"`
	Low   FlexFloat  `json:"low"`
	Open  FlexFloat  `json:"open"`
	Vol   FlexFloat  `json:"vol"`
}

// FlexFloat decodes a JSON number, a numeric string or null (as 0).
// Strings spelling NaN or an infinity are rejected.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("flex float %q: %w", s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("flex float %q: not a finite number", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("flex float %s: %w", b, err)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexString decodes a JSON string, a number (kept as its literal text) or null (as "").
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("flex string %s: %w", b, err)
		}
		*s = FlexString(n.String())
	}
	return nil
}
