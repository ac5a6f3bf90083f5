package view

import (
	"errors"

	"github.com/Meo-4971/StockView/internal/relay"
)

// NoDataMessage is shown when the selected range has no rows.
const NoDataMessage = "No data available for the selected ticker."

// Message maps an error from Resolve or the session load to the text shown
// to the user. Unknown errors get a generic message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoData):
		return NoDataMessage
	case errors.Is(err, relay.ErrUpstreamUnreachable):
		return "The trading-data provider could not be reached. Restart StockView to try again."
	case errors.Is(err, relay.ErrUpstreamMalformed):
		return "The trading-data provider returned data in an unexpected format."
	case errors.Is(err, relay.ErrTickerNotFound):
		return "The selected ticker is not in the loaded data."
	}
	return "Something went wrong while preparing the view."
}
