package datasource

import (
	"context"
	"errors"

	"github.com/yourorg/forecast-service/internal/model"
)

// ErrNoData means the source has no price history for the ticker.
var ErrNoData = errors.New("no price data for ticker")

// ErrNoLocalDir means a local lookup was requested without a data
// directory configured or supplied.
var ErrNoLocalDir = errors.New("no local data directory configured")

// ErrUpstream wraps failures talking to an external data source.
var ErrUpstream = errors.New("upstream data source failure")

// Provider serves daily price history for a single source.
type Provider interface {
	// History returns daily bars for the trailing number of years,
	// oldest first.
	History(ctx context.Context, ticker string, years int) ([]model.Bar, error)

	// Symbols lists the tickers this source can serve.
	Symbols(ctx context.Context) ([]string, error)
}
