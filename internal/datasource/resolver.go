package datasource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
)

// Resolver maps a requested data source (auto/local/yfinance) to a
// concrete provider and caches fetched history in memory.
type Resolver struct {
	yahoo      Provider
	newLocal   func(dir string) Provider
	defaultDir string
	ttl        time.Duration
	logger     *zap.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	bars      []model.Bar
	fetchedAt time.Time
}

// NewResolver wires the Yahoo provider and the local CSV provider
// factory. defaultDir may be empty when no local data is configured.
func NewResolver(defaultDir string, ttl time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		yahoo:      NewYahooProvider(logger),
		newLocal:   func(dir string) Provider { return NewLocalProvider(dir, logger) },
		defaultDir: defaultDir,
		ttl:        ttl,
		logger:     logger,
		cache:      make(map[string]cacheEntry),
	}
}

// History fetches bars for a ticker, resolving "auto" to local data
// when the ticker's CSV exists, falling back to Yahoo otherwise. It
// returns the bars together with the source that actually served them.
func (r *Resolver) History(ctx context.Context, ticker string, years int, source model.DataSource, localDir string) ([]model.Bar, model.DataSource, error) {
	dir := r.dataDir(localDir)

	switch source {
	case model.SourceLocal:
		if dir == "" {
			return nil, source, ErrNoLocalDir
		}
		bars, err := r.cachedHistory(ctx, r.newLocal(dir), model.SourceLocal, dir, ticker, years)
		return bars, model.SourceLocal, err

	case model.SourceYFinance:
		bars, err := r.cachedHistory(ctx, r.yahoo, model.SourceYFinance, "", ticker, years)
		return bars, model.SourceYFinance, err

	case model.SourceAuto, "":
		if dir != "" {
			bars, err := r.cachedHistory(ctx, r.newLocal(dir), model.SourceLocal, dir, ticker, years)
			if err == nil {
				return bars, model.SourceLocal, nil
			}
			r.logger.Debug("Local data unavailable, falling back to Yahoo",
				zap.String("ticker", ticker),
				zap.Error(err))
		}
		bars, err := r.cachedHistory(ctx, r.yahoo, model.SourceYFinance, "", ticker, years)
		return bars, model.SourceYFinance, err

	default:
		return nil, source, fmt.Errorf("unsupported data source: %s", source)
	}
}

// Symbols lists tickers for the resolved source.
func (r *Resolver) Symbols(ctx context.Context, source model.DataSource, localDir string) ([]string, model.DataSource, error) {
	dir := r.dataDir(localDir)

	switch source {
	case model.SourceLocal:
		if dir == "" {
			return nil, source, ErrNoLocalDir
		}
		symbols, err := r.newLocal(dir).Symbols(ctx)
		return symbols, model.SourceLocal, err

	case model.SourceYFinance:
		symbols, err := r.yahoo.Symbols(ctx)
		return symbols, model.SourceYFinance, err

	case model.SourceAuto, "":
		if dir != "" {
			symbols, err := r.newLocal(dir).Symbols(ctx)
			if err == nil && len(symbols) > 0 {
				return symbols, model.SourceLocal, nil
			}
		}
		symbols, err := r.yahoo.Symbols(ctx)
		return symbols, model.SourceYFinance, err

	default:
		return nil, source, fmt.Errorf("unsupported data source: %s", source)
	}
}

func (r *Resolver) dataDir(requestDir string) string {
	if requestDir != "" {
		return requestDir
	}
	return r.defaultDir
}

// cachedHistory keys entries by source, directory, ticker and period.
// The directory matters: two requests naming different local dirs must
// never serve each other's bars. It is empty for remote sources.
func (r *Resolver) cachedHistory(ctx context.Context, p Provider, source model.DataSource, dir, ticker string, years int) ([]model.Bar, error) {
	key := fmt.Sprintf("%s|%s|%s|%dy", source, dir, ticker, years)

	if r.ttl > 0 {
		r.mu.RLock()
		entry, ok := r.cache[key]
		r.mu.RUnlock()
		if ok && time.Since(entry.fetchedAt) < r.ttl {
			return entry.bars, nil
		}
	}

	bars, err := p.History(ctx, ticker, years)
	if err != nil {
		return nil, err
	}

	if r.ttl > 0 {
		r.mu.Lock()
		r.cache[key] = cacheEntry{bars: bars, fetchedAt: time.Now()}
		r.mu.Unlock()
	}
	return bars, nil
}
