package stocktraders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMalformedReply is returned when the body is not the expected envelope.
var ErrMalformedReply = errors.New("stocktraders: malformed reply")

// StatusError reports a response whose status is not StatusTotalTradeOK.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stocktraders: unexpected status %d: %s", e.Code, e.Body)
}

type RESTClient struct {
	url        string
	account    string
	httpClient *http.Client
}

// NewRESTClient creates a client for the getTotalTrade endpoint.
// A zero timeout leaves the request unbounded.
func NewRESTClient(url, account string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		url:        url,
		account:    account,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetTotalTrade posts the account request and returns the per-ticker trade history.
func (c *RESTClient) GetTotalTrade(ctx context.Context) (*TotalTradeReply, error) {
	payload, err := json.Marshal(NewTotalTradeRequest(c.account))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != StatusTotalTradeOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var rawResp TotalTradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformedReply, err)
	}

	if rawResp.TotalTradeReply == nil {
		return nil, fmt.Errorf("%w: missing TotalTradeReply", ErrMalformedReply)
	}
	if rawResp.TotalTradeReply.StockTotals == nil {
		return nil, fmt.Errorf("%w: missing stockTotals", ErrMalformedReply)
	}

	return rawResp.TotalTradeReply, nil
}
