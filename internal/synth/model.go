package synth

import "fmt"

type ModelPrediction struct {
	TimePoint int     `json:"timePoint"`
	Actual    float64 `json:"actual"`
	Predicted float64 `json:"predicted"`
}

type TrainingEpoch struct {
	Epoch   int     `json:"epoch"`
	Loss    float64 `json:"loss"`
	ValLoss float64 `json:"val_loss"`
}

type InferenceLatency struct {
	BatchSize int     `json:"batchSize"`
	LatencyMS float64 `json:"latency"`
}

type ModelCard struct {
	Architecture   string             `json:"architecture"`
	Layers         string             `json:"layers"`
	InputFeatures  int                `json:"inputFeatures"`
	SequenceLength int                `json:"sequenceLength"`
	HiddenUnits    int                `json:"hiddenUnits"`
	Dropout        float64            `json:"dropout"`
	Optimizer      string             `json:"optimizer"`
	LearningRate   float64            `json:"learningRate"`
	BatchSize      int                `json:"batchSize"`
	Epochs         int                `json:"epochs"`
	RMSE           float64            `json:"rmse"`
	Training       []TrainingEpoch    `json:"trainingHistory"`
	Inference      []InferenceLatency `json:"inferenceData"`
}

// ModelPredictions simulates a remaining-useful-life model tracking a linearly degrading signal:
// the actual value falls 2.5 per step with ±2.5 noise and the prediction misses it by up to ±5.
func (g *Generator) ModelPredictions(n int) ([]ModelPrediction, error) {
	if n < 1 || n > MaxModelPoints {
		return nil, fmt.Errorf("points %d not in [1,%d]: %w", n, MaxModelPoints, ErrInvalidCount)
	}

	out := make([]ModelPrediction, 0, n)
	for i := 0; i < n; i++ {
		actual := 100 - float64(i)*2.5 + uniform(g.src, -2.5, 2.5)
		predicted := actual + uniform(g.src, -5, 5)
		out = append(out, ModelPrediction{
			TimePoint: i + 1,
			Actual:    round(actual, 1),
			Predicted: round(predicted, 1),
		})
	}
	return out, nil
}

func Model() ModelCard {
	return ModelCard{
		Architecture:   "LSTM (Long Short-Term Memory)",
		Layers:         "3 LSTM layers + 2 Dense layers",
		InputFeatures:  12,
		SequenceLength: 24,
		HiddenUnits:    64,
		Dropout:        0.2,
		Optimizer:      "Adam",
		LearningRate:   0.001,
		BatchSize:      32,
		Epochs:         100,
		RMSE:           0.179,
		Training: []TrainingEpoch{
			{1, 0.42, 0.45}, {10, 0.31, 0.33}, {20, 0.24, 0.26}, {30, 0.19, 0.22},
			{40, 0.17, 0.20}, {50, 0.16, 0.19}, {60, 0.155, 0.185}, {70, 0.152, 0.183},
			{80, 0.150, 0.181}, {90, 0.149, 0.180}, {100, 0.148, 0.179},
		},
		Inference: []InferenceLatency{
			{1, 12}, {4, 18}, {8, 24}, {16, 32}, {32, 45}, {64, 62},
		},
	}
}
