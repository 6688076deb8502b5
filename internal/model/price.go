package model

import "time"

// DataSource identifies where price history comes from.
type DataSource string

const (
	SourceAuto     DataSource = "auto"
	SourceLocal    DataSource = "local"
	SourceYFinance DataSource = "yfinance"
)

// Valid reports whether the data source is one of the accepted values.
func (s DataSource) Valid() bool {
	switch s {
	case SourceAuto, SourceLocal, SourceYFinance:
		return true
	}
	return false
}

// Bar is a single daily OHLCV bar.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PricePoint is a dated close value as served to clients.
type PricePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Closes extracts the close series from a slice of bars.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// PricePoints converts bars to dated close points, newest last.
func PricePoints(bars []Bar) []PricePoint {
	points := make([]PricePoint, len(bars))
	for i, b := range bars {
		points[i] = PricePoint{Date: b.Date.Format("2006-01-02"), Value: b.Close}
	}
	return points
}

// ParsePeriod maps a period string (1y/3y/5y/10y) to a number of years.
func ParsePeriod(period string) (int, bool) {
	switch period {
	case "1y":
		return 1, true
	case "3y":
		return 3, true
	case "5y":
		return 5, true
	case "10y":
		return 10, true
	}
	return 0, false
}
