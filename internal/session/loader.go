package session

import (
	"context"
	"time"

	"github.com/Meo-4971/StockView/internal/relay"

	"go.uber.org/zap"
)

// Fetcher is satisfied by *relay.Relay.
type Fetcher interface {
	GetAllTickerData(ctx context.Context) (*relay.TickerDataset, error)
}

// Archiver stores a copy of the loaded bars somewhere durable.
// *postgres.PostgresClient satisfies it.
type Archiver interface {
	IsHealthy(ctx context.Context) bool
	ArchiveDataset(ctx context.Context, ds *relay.TickerDataset) (int, error)
}

type Loader struct {
	Fetcher  Fetcher
	Archiver Archiver // optional
	Logger   *zap.Logger

	// ArchiveTimeout bounds the archive write; zero means 30s.
	ArchiveTimeout time.Duration
}

// Load fetches the dataset once and stores it, error included, in store.
// It returns the load error so the caller can log it; the session still
// starts with whatever was stored.
func (l *Loader) Load(ctx context.Context, store *Store) error {
	ds, err := l.Fetcher.GetAllTickerData(ctx)
	store.Set(ds, err)
	if err != nil {
		l.Logger.Error("failed to load ticker data", zap.Error(err))
		return err
	}
	l.Logger.Info("session loaded",
		zap.Int("tickers", len(store.Tickers())),
		zap.Int("bars", store.CountAll()),
	)

	if l.Archiver != nil {
		l.archive(ctx, store.Dataset())
	}
	return nil
}

func (l *Loader) archive(ctx context.Context, ds *relay.TickerDataset) {
	timeout := l.ArchiveTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !l.Archiver.IsHealthy(ctx) {
		l.Logger.Warn("archive unreachable, snapshot not archived")
		return
	}
	n, err := l.Archiver.ArchiveDataset(ctx, ds)
	if err != nil {
		l.Logger.Warn("failed to archive snapshot", zap.Int("inserted", n), zap.Error(err))
		return
	}
	l.Logger.Info("archived snapshot", zap.Int("inserted", n))
}
