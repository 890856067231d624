// Package entity defines the domain models for the candles feature.
package entity

import "time"

// RawCandle is one row as delivered by the market data source, before it is
// turned into a Candle. Begin is kept as the upstream string.
type RawCandle struct {
	Begin  string  // Bar start as sent by the exchange (e.g., "2024-06-14 10:00:00")
	Open   float64 // Opening price
	High   float64 // Highest price during this period
	Low    float64 // Lowest price during this period
	Close  float64 // Closing price
	Volume float64 // Traded volume (lots or shares, as reported upstream)
}

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for one bar. Time is the start of the bar.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// CandleSeries is a non-empty sequence of candles for one ticker and one
// resolution, in ascending time order.
type CandleSeries struct {
	Ticker     string
	Resolution Resolution
	Window     DateWindow
	Candles    []Candle
}

// Len returns the number of candles in the series.
func (s CandleSeries) Len() int {
	return len(s.Candles)
}
