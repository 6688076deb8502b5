package datasource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
)

const yahooMaxRetries = 3

// YahooProvider fetches daily bars from Yahoo Finance.
type YahooProvider struct {
	logger *zap.Logger
}

// NewYahooProvider creates a Yahoo Finance provider.
func NewYahooProvider(logger *zap.Logger) *YahooProvider {
	return &YahooProvider{logger: logger}
}

// History downloads the trailing years of daily bars for a ticker.
// Transient upstream failures are retried with exponential backoff.
func (p *YahooProvider) History(ctx context.Context, ticker string, years int) ([]model.Bar, error) {
	end := time.Now()
	start := end.AddDate(-years, 0, 0)

	params := &chart.Params{
		Symbol:   strings.ToUpper(strings.TrimSpace(ticker)),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	var bars []model.Bar
	fetch := func() error {
		iter := chart.Get(params)

		bars = bars[:0]
		for iter.Next() {
			b := iter.Bar()
			bars = append(bars, model.Bar{
				Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
				Open:   b.Open.InexactFloat64(),
				High:   b.High.InexactFloat64(),
				Low:    b.Low.InexactFloat64(),
				Close:  b.Close.InexactFloat64(),
				Volume: int64(b.Volume),
			})
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to fetch chart for %s: %w", params.Symbol, err)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), yahooMaxRetries),
		ctx,
	)
	if err := backoff.Retry(fetch, policy); err != nil {
		p.logger.Error("Yahoo Finance request failed",
			zap.Error(err),
			zap.String("ticker", params.Symbol))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, params.Symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// Symbols returns a curated list of liquid tickers. Yahoo Finance does
// not expose a symbol directory, so this mirrors what the dashboard's
// autocomplete offers out of the box.
func (p *YahooProvider) Symbols(ctx context.Context) ([]string, error) {
	return []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX",
		"AMD", "INTC", "CRM", "ORCL", "ADBE", "PYPL", "DIS", "V", "MA",
		"JPM", "BAC", "WFC", "GS", "MS", "JNJ", "PFE", "KO", "PEP",
		"WMT", "HD", "NKE", "MCD", "SBUX", "UNH", "CVX", "XOM",
		"^GSPC", "^NSEI", "^DJI",
	}, nil
}
