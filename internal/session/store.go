package session

import (
	"sync"
	"time"

	"github.com/Meo-4971/StockView/internal/relay"
)

// Store holds the dataset fetched at session start. It is written once by
// the loader and read by every view; there is no invalidation, the snapshot
// lives as long as the process.
type Store struct {
	mu       sync.RWMutex
	dataset  *relay.TickerDataset
	loadErr  error
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{dataset: relay.EmptyDataset()}
}

// Set records the result of the startup load. A nil dataset is stored as empty.
func (s *Store) Set(ds *relay.TickerDataset, err error) {
	if ds == nil {
		ds = relay.EmptyDataset()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.loadErr = err
	s.loadedAt = time.Now()
}

// Err returns the classified load error, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Store) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.dataset.Tickers))
	copy(out, s.dataset.Tickers)
	return out
}

// Bars returns a copy of the ticker's bars or relay.ErrTickerNotFound.
func (s *Store) Bars(ticker string) ([]relay.PriceBar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bars, err := s.dataset.Bars(ticker)
	if err != nil {
		return nil, err
	}
	cp := make([]relay.PriceBar, len(bars))
	copy(cp, bars)
	return cp, nil
}

// Dataset returns the snapshot itself. Callers must not modify it.
func (s *Store) Dataset() *relay.TickerDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// CountAll returns the total number of bars held across all tickers.
func (s *Store) CountAll() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, bars := range s.dataset.StockData {
		total += len(bars)
	}
	return total
}
