package relay

import "errors"

var (
	// ErrUpstreamUnreachable covers transport failures and any status other than 201.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	// ErrUpstreamMalformed means the reply lacked TotalTradeReply.stockTotals or was not JSON.
	ErrUpstreamMalformed = errors.New("upstream reply malformed")
	ErrTickerNotFound    = errors.New("ticker not found")
)
