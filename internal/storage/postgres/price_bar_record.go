package postgres

import "time"

// PriceBarRecord is one archived daily bar. A (ticker, date) pair is stored once.
type PriceBarRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Ticker string    `gorm:"type:text;not null;index:idx_price_bar_ticker;index:idx_price_bar_ticker_date,unique"`
	Date   time.Time `gorm:"type:date;not null;index:idx_price_bar_ticker_date,unique"`

	Open  float64 `gorm:"type:numeric;not null"`
	High  float64 `gorm:"type:numeric;not null"`
	Low   float64 `gorm:"type:numeric;not null"`
	Close float64 `gorm:"type:numeric;not null"`
	Vol   float64 `gorm:"type:numeric;not null"`

	// RawDate keeps the date exactly as the provider sent it.
	RawDate string `gorm:"type:text"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (PriceBarRecord) TableName() string {
	return "price_bar"
}
