package stocktraders

import "net/http"

const (
	// DefaultURL is the getTotalTrade endpoint of the stocktraders.vn data service.
	DefaultURL = "https://stocktraders.vn/service/data/getTotalTrade"

	// DefaultAccount is the static account name the service expects in every request.
	DefaultAccount = "StockTraders"

	// StatusTotalTradeOK is the only status the service answers with on success.
	StatusTotalTradeOK = http.StatusCreated
)
