package postgres

import (
	"context"
	"fmt"

	"github.com/Meo-4971/StockView/internal/relay"
	"github.com/Meo-4971/StockView/internal/view"

	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

// InsertBars stores records, skipping any (ticker, date) already archived.
// It returns the number of rows actually inserted.
func (p *PostgresClient) InsertBars(ctx context.Context, records []PriceBarRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "ticker"},
			{Name: "date"},
		},
		DoNothing: true,
	}).CreateInBatches(records, insertBatchSize)

	if tx.Error != nil {
		return int(tx.RowsAffected), tx.Error
	}
	return int(tx.RowsAffected), nil
}

// ArchiveDataset stores every bar of ds. Bars whose date cannot be parsed
// are skipped.
func (p *PostgresClient) ArchiveDataset(ctx context.Context, ds *relay.TickerDataset) (int, error) {
	records, _ := ToPriceBarRecords(ds)
	n, err := p.InsertBars(ctx, records)
	if err != nil {
		return n, fmt.Errorf("archive %d bars: %w", len(records), err)
	}
	return n, nil
}

// ToPriceBarRecord converts a relay bar into a record for DB insertion.
func ToPriceBarRecord(ticker string, b relay.PriceBar) (*PriceBarRecord, error) {
	date, err := view.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}
	return &PriceBarRecord{
		Ticker:  ticker,
		Date:    date,
		Open:    b.Open,
		High:    b.High,
		Low:     b.Low,
		Close:   b.Close,
		Vol:     b.Vol,
		RawDate: b.Date,
	}, nil
}

// ToPriceBarRecords flattens ds in ticker order. It also returns how many
// bars were skipped for an unparseable date.
func ToPriceBarRecords(ds *relay.TickerDataset) ([]PriceBarRecord, int) {
	if ds == nil {
		return nil, 0
	}
	var (
		records []PriceBarRecord
		skipped int
	)
	for _, ticker := range ds.Tickers {
		for _, b := range ds.StockData[ticker] {
			rec, err := ToPriceBarRecord(ticker, b)
			if err != nil {
				skipped++
				continue
			}
			records = append(records, *rec)
		}
	}
	return records, skipped
}
