package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
)

// LocalProvider serves bars from a directory of per-ticker CSV files
// in the yfinance export layout:
//
//	Date,Open,High,Low,Close,Adj Close,Volume
//
// Headers are matched case-insensitively and "Adj Close" is optional.
type LocalProvider struct {
	dir    string
	logger *zap.Logger
}

// NewLocalProvider creates a provider over a CSV directory.
func NewLocalProvider(dir string, logger *zap.Logger) *LocalProvider {
	return &LocalProvider{dir: dir, logger: logger}
}

// History loads and filters the CSV file for a ticker.
func (p *LocalProvider) History(ctx context.Context, ticker string, years int) ([]model.Bar, error) {
	path, err := p.findFile(ticker)
	if err != nil {
		return nil, err
	}

	bars, err := readBarsCSV(path)
	if err != nil {
		p.logger.Error("Failed to read local CSV",
			zap.Error(err),
			zap.String("path", path))
		return nil, err
	}

	cutoff := time.Now().AddDate(-years, 0, 0)
	filtered := bars[:0]
	for _, b := range bars {
		if !b.Date.Before(cutoff) {
			filtered = append(filtered, b)
		}
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}
	return filtered, nil
}

// Symbols lists the CSV file stems in the data directory.
func (p *LocalProvider) Symbols(ctx context.Context) ([]string, error) {
	if p.dir == "" {
		return nil, ErrNoLocalDir
	}

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", p.dir, err)
	}

	var symbols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		symbols = append(symbols, strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	sort.Strings(symbols)
	return symbols, nil
}

// findFile locates <dir>/<ticker>.csv, trying the ticker as given and
// upper/lower cased.
func (p *LocalProvider) findFile(ticker string) (string, error) {
	if p.dir == "" {
		return "", ErrNoLocalDir
	}

	ticker = strings.TrimSpace(ticker)
	for _, name := range []string{ticker, strings.ToUpper(ticker), strings.ToLower(ticker)} {
		path := filepath.Join(p.dir, name+".csv")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoData, ticker)
}

// readBarsCSV parses one file into bars sorted by date ascending.
func readBarsCSV(path string) ([]model.Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("no data rows in %s", filepath.Base(path))
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date", "open", "high", "low", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV %s is missing column %q", filepath.Base(path), required)
		}
	}

	var bars []model.Bar
	for _, row := range records[1:] {
		date, err := parseDate(row[cols["date"]])
		if err != nil {
			continue // skip malformed rows
		}

		bar := model.Bar{Date: date}
		if bar.Open, err = parsePrice(row[cols["open"]]); err != nil {
			continue
		}
		if bar.High, err = parsePrice(row[cols["high"]]); err != nil {
			continue
		}
		if bar.Low, err = parsePrice(row[cols["low"]]); err != nil {
			continue
		}
		if bar.Close, err = parsePrice(row[cols["close"]]); err != nil {
			continue
		}
		if vi, ok := cols["volume"]; ok && vi < len(row) {
			bar.Volume, _ = strconv.ParseInt(strings.TrimSpace(row[vi]), 10, 64)
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no parsable rows in %s", filepath.Base(path))
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
