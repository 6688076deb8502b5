package model

// PredictRequest asks for a forecast from the latest trained model.
// No omitempty on the ranged fields: defaults are pre-filled, so an
// out-of-range value at validation time — an explicit zero included —
// always came from the client.
type PredictRequest struct {
	Ticker        string     `json:"ticker" binding:"required,ticker"`
	Horizon       int        `json:"horizon" binding:"gte=1,lte=120"`
	HistoryPoints int        `json:"history_points" binding:"gte=20,lte=500"`
	DataSource    DataSource `json:"data_source" binding:"oneof=auto local yfinance"`
	LocalDataDir  string     `json:"local_data_dir"`
}

// NewPredictRequest returns a request pre-filled with defaults.
func NewPredictRequest() PredictRequest {
	return PredictRequest{
		Horizon:       10,
		HistoryPoints: 90,
		DataSource:    SourceAuto,
	}
}

// PredictResponse is the forecast payload rendered by the dashboard:
// trailing history for context plus the forecast tape.
type PredictResponse struct {
	Ticker        string       `json:"ticker"`
	Source        DataSource   `json:"source"`
	Transform     string       `json:"transform"`
	ModelArtifact string       `json:"model_artifact"`
	InputLen      int          `json:"input_len"`
	PredLen       int          `json:"pred_len"`
	Horizon       int          `json:"horizon"`
	LastClose     float64      `json:"last_close"`
	History       []PricePoint `json:"history"`
	Forecast      []PricePoint `json:"forecast"`
}
