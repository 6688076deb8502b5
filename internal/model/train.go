package model

// TrainRequest carries the parameters for a training run.
// Ranges mirror what the dashboard form allows.
type TrainRequest struct {
	Ticker       string     `json:"ticker" binding:"required,ticker"`
	Period       string     `json:"period" binding:"oneof=1y 3y 5y 10y"`
	InputLen     int        `json:"input_len" binding:"gte=20,lte=512"`
	PredLen      int        `json:"pred_len" binding:"gte=1,lte=120"`
	Epochs       int        `json:"epochs" binding:"gte=1,lte=500"`
	BatchSize    int        `json:"batch_size" binding:"gte=8,lte=512"`
	LearningRate float64    `json:"learning_rate" binding:"gt=0,lt=1"`
	DataSource   DataSource `json:"data_source" binding:"oneof=auto local yfinance"`
	LocalDataDir string     `json:"local_data_dir"`
}

// NewTrainRequest returns a request pre-filled with defaults so that
// binding only overwrites the fields the client actually sent. The
// binding tags deliberately lack omitempty: the defaults already
// satisfy every range, so the only way a field can be out of range at
// validation time is a bad value the client explicitly supplied —
// including an explicit zero, which must be rejected, not treated as
// absent.
func NewTrainRequest() TrainRequest {
	return TrainRequest{
		Period:       "5y",
		InputLen:     60,
		PredLen:      5,
		Epochs:       30,
		BatchSize:    32,
		LearningRate: 0.001,
		DataSource:   SourceAuto,
	}
}

// TrainResponse reports the outcome of a completed training run.
type TrainResponse struct {
	Ticker            string     `json:"ticker"`
	Source            DataSource `json:"source"`
	Transform         string     `json:"transform"`
	ArtifactPath      string     `json:"artifact_path"`
	TrainLoss         float64    `json:"train_loss"`
	ValLoss           float64    `json:"val_loss"`
	ValRMSE           float64    `json:"val_rmse"`
	DirectionAccuracy float64    `json:"direction_accuracy"`
	InputLen          int        `json:"input_len"`
	PredLen           int        `json:"pred_len"`
	TrainSamples      int        `json:"train_samples"`
	ValSamples        int        `json:"val_samples"`
	TrainedAtUTC      string     `json:"trained_at_utc"`
}
