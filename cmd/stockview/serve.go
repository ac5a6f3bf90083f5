package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Meo-4971/StockView/internal/metrics"
	"github.com/Meo-4971/StockView/internal/relay"
	"github.com/Meo-4971/StockView/internal/session"
	"github.com/Meo-4971/StockView/internal/web"
	"github.com/Meo-4971/StockView/pkg/stocktraders"
	"github.com/Meo-4971/StockView/internal/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the ticker data once and serve the viewer",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	client := stocktraders.NewRESTClient(cfg.Upstream.URL, cfg.Upstream.Account, cfg.Upstream.Timeout)
	rl := relay.New(client, m, log)

	loader := &session.Loader{Fetcher: rl, Logger: log}
	if cfg.Postgres.Enabled {
		pg, err := postgres.InitializeAndMigrate(cfg.Postgres, true)
		if err != nil {
			log.Warn("snapshot archive disabled", zap.Error(err))
		} else {
			defer pg.Close()
			loader.Archiver = pg
		}
	}

	// The session keeps the load error and shows it on the page.
	store := session.NewStore()
	_ = loader.Load(ctx, store)

	start, _ := time.Parse(time.DateOnly, cfg.View.DefaultStart)
	end, _ := time.Parse(time.DateOnly, cfg.View.DefaultEnd)

	srv := web.New(web.Options{
		Store:        store,
		Relay:        rl,
		Metrics:      m,
		Logger:       log,
		DefaultStart: start,
		DefaultEnd:   end,
	})
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
