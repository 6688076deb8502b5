package model

// SymbolsQuery are the query parameters accepted by GET /api/symbols.
// Handlers pre-fill the defaults before binding, so the ranged tags
// run against whatever the client actually sent.
type SymbolsQuery struct {
	DataSource   DataSource `form:"data_source" binding:"oneof=auto local yfinance"`
	LocalDataDir string     `form:"local_data_dir"`
}

// SymbolsResponse lists the tickers a source can serve.
type SymbolsResponse struct {
	Source  DataSource `json:"source"`
	Symbols []string   `json:"symbols"`
}

// HistoryQuery are the query parameters accepted by GET /api/history.
type HistoryQuery struct {
	Ticker string `form:"ticker" binding:"required,ticker"`
	Period string `form:"period" binding:"oneof=1y 3y 5y 10y"`
	// Points has no default: zero means the full period, so omitempty
	// stays.
	Points       int        `form:"points" binding:"omitempty,gte=20,lte=500"`
	DataSource   DataSource `form:"data_source" binding:"oneof=auto local yfinance"`
	LocalDataDir string     `form:"local_data_dir"`
}

// HistoryResponse is the raw close series for charting.
type HistoryResponse struct {
	Ticker  string       `json:"ticker"`
	Source  DataSource   `json:"source"`
	History []PricePoint `json:"history"`
}
