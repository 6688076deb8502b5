package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

// recentCSV builds rows relative to today so period filters behave the
// same regardless of when the test runs.
func recentCSV(days int) string {
	content := "Date,Open,High,Low,Close,Adj Close,Volume\n"
	for i := days; i >= 1; i-- {
		d := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		price := 100.0 + float64(days-i)
		content += fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.2f,%.2f,%d\n", d, price, price+1, price-1, price+0.5, price+0.5, 1000+i)
	}
	return content
}

func TestLocalProviderHistory(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "ACME.csv", recentCSV(30))

	p := NewLocalProvider(dir, zap.NewNop())
	bars, err := p.History(context.Background(), "acme", 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}

	if len(bars) != 30 {
		t.Fatalf("expected 30 bars, got %d", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			t.Fatalf("bars must be sorted ascending: %v !> %v", bars[i].Date, bars[i-1].Date)
		}
	}
	if bars[0].Volume == 0 {
		t.Error("volume column should be parsed")
	}
}

func TestLocalProviderHistoryUnsortedInput(t *testing.T) {
	dir := t.TempDir()
	d1 := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	d2 := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	// Newest row first; the provider must sort ascending.
	writeCSV(t, dir, "XYZ.csv",
		"date,open,high,low,close\n"+
			d2+",11,12,10,11.5\n"+
			d1+",10,11,9,10.5\n")

	p := NewLocalProvider(dir, zap.NewNop())
	bars, err := p.History(context.Background(), "XYZ", 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 10.5 {
		t.Errorf("oldest bar first: expected close 10.5, got %f", bars[0].Close)
	}
}

func TestLocalProviderUnknownTicker(t *testing.T) {
	p := NewLocalProvider(t.TempDir(), zap.NewNop())
	_, err := p.History(context.Background(), "NOPE", 1)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestLocalProviderNoDir(t *testing.T) {
	p := NewLocalProvider("", zap.NewNop())
	if _, err := p.History(context.Background(), "ACME", 1); !errors.Is(err, ErrNoLocalDir) {
		t.Fatalf("expected ErrNoLocalDir, got %v", err)
	}
	if _, err := p.Symbols(context.Background()); !errors.Is(err, ErrNoLocalDir) {
		t.Fatalf("expected ErrNoLocalDir, got %v", err)
	}
}

func TestLocalProviderSymbols(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "beta.csv", recentCSV(2))
	writeCSV(t, dir, "ALPHA.csv", recentCSV(2))
	writeCSV(t, dir, "notes.txt", "ignore me")

	p := NewLocalProvider(dir, zap.NewNop())
	symbols, err := p.Symbols(context.Background())
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}

	if len(symbols) != 2 || symbols[0] != "ALPHA" || symbols[1] != "BETA" {
		t.Errorf("expected [ALPHA BETA], got %v", symbols)
	}
}

func TestLocalProviderMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "BAD.csv", "Date,Open\n2024-01-02,10\n")

	p := NewLocalProvider(dir, zap.NewNop())
	if _, err := p.History(context.Background(), "BAD", 1); err == nil {
		t.Error("expected error for missing close column")
	}
}
