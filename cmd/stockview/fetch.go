package main

import (
	"encoding/json"

	"github.com/Meo-4971/StockView/internal/relay"
	"github.com/Meo-4971/StockView/pkg/stocktraders"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all ticker data once and print it as JSON",
	Long: `Fetch calls the trading-data provider once and prints the relay JSON
({"tickers":[...],"stock_data":{...}}) to stdout. On failure the empty
dataset is printed and the command exits non-zero.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(true)
		if err != nil {
			return err
		}
		defer log.Sync()

		client := stocktraders.NewRESTClient(cfg.Upstream.URL, cfg.Upstream.Account, cfg.Upstream.Timeout)
		ds, fetchErr := relay.New(client, nil, log).GetAllTickerData(cmd.Context())

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return fetchErr
	},
}
