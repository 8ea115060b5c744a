// Package evaluation scores predicted probabilities against recorded outcomes.
package evaluation

import (
	"errors"
	"fmt"
	"math"
)

// Threshold binarizes probabilities: strictly greater than Threshold is a blue win.
// A probability of exactly 0.5 is predicted as a red win.
const Threshold = 0.5

var (
	// ErrInputShape indicates mismatched, empty or out-of-range inputs
	ErrInputShape = errors.New("invalid evaluation input")

	// ErrUndefinedMetric indicates a metric that cannot be computed for the batch
	ErrUndefinedMetric = errors.New("undefined metric")
)

// Report holds the accuracy metrics of one batch of predictions
type Report struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	ROCAUC    float64 `json:"roc_auc"`
	Samples   int     `json:"samples"`

	// Extras carries caller-specific values such as skipped match counts
	Extras map[string]float64 `json:"extras,omitempty"`
}

// Map returns the report keyed by metric name
func (r *Report) Map() map[string]float64 {
	out := map[string]float64{
		"accuracy":  r.Accuracy,
		"precision": r.Precision,
		"recall":    r.Recall,
		"roc_auc":   r.ROCAUC,
	}
	for k, v := range r.Extras {
		out[k] = v
	}
	return out
}

// WithExtra attaches a caller-specific value
func (r *Report) WithExtra(name string, value float64) *Report {
	if r.Extras == nil {
		r.Extras = make(map[string]float64)
	}
	r.Extras[name] = value
	return r
}

// Confusion counts binarized predictions against ground truth
type Confusion struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

// Predict binarizes one probability
func Predict(probability float64) int {
	if probability > Threshold {
		return 1
	}
	return 0
}

// Evaluate computes accuracy, precision, recall and ROC-AUC.
// outcomes holds 1 for a blue win and 0 otherwise.
func Evaluate(outcomes []int, probabilities []float64) (*Report, error) {
	if err := validate(outcomes, probabilities); err != nil {
		return nil, err
	}

	c := confusion(outcomes, probabilities)
	auc, err := ROCAUC(outcomes, probabilities)
	if err != nil {
		return nil, err
	}

	n := len(outcomes)
	return &Report{
		Accuracy:  float64(c.TruePositives+c.TrueNegatives) / float64(n),
		Precision: ratio(c.TruePositives, c.TruePositives+c.FalsePositives),
		Recall:    ratio(c.TruePositives, c.TruePositives+c.FalseNegatives),
		ROCAUC:    auc,
		Samples:   n,
	}, nil
}

// ConfusionMatrix binarizes the probabilities and counts the four outcomes
func ConfusionMatrix(outcomes []int, probabilities []float64) (Confusion, error) {
	if err := validate(outcomes, probabilities); err != nil {
		return Confusion{}, err
	}
	return confusion(outcomes, probabilities), nil
}

func confusion(outcomes []int, probabilities []float64) Confusion {
	var c Confusion
	for i, truth := range outcomes {
		pred := Predict(probabilities[i])
		switch {
		case truth == 1 && pred == 1:
			c.TruePositives++
		case truth == 0 && pred == 1:
			c.FalsePositives++
		case truth == 0 && pred == 0:
			c.TrueNegatives++
		default:
			c.FalseNegatives++
		}
	}
	return c
}

func validate(outcomes []int, probabilities []float64) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("%w: no samples", ErrInputShape)
	}
	if len(outcomes) != len(probabilities) {
		return fmt.Errorf("%w: %d outcomes but %d probabilities", ErrInputShape, len(outcomes), len(probabilities))
	}
	for i, truth := range outcomes {
		if truth != 0 && truth != 1 {
			return fmt.Errorf("%w: outcome %d at index %d is not 0 or 1", ErrInputShape, truth, i)
		}
		p := probabilities[i]
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: probability %v at index %d outside [0, 1]", ErrInputShape, p, i)
		}
	}
	return nil
}

// ratio returns 0 for an empty denominator
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
