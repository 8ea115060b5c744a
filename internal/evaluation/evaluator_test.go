package evaluation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePerfectSeparation(t *testing.T) {
	report, err := Evaluate([]int{1, 1, 0, 0}, []float64{0.9, 0.9, 0.1, 0.1})
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, 1.0, report.Precision)
	assert.Equal(t, 1.0, report.Recall)
	assert.Equal(t, 1.0, report.ROCAUC)
	assert.Equal(t, 4, report.Samples)
}

func TestEvaluateThresholdIsStrict(t *testing.T) {
	report, err := Evaluate([]int{1, 0}, []float64{0.5, 0.5})
	require.NoError(t, err)

	assert.Equal(t, 0.5, report.Accuracy)
	assert.Equal(t, 0.0, report.Precision, "no positive predictions")
	assert.Equal(t, 0.0, report.Recall)
	assert.Equal(t, 0.5, report.ROCAUC)

	assert.Equal(t, 0, Predict(0.5))
	assert.Equal(t, 1, Predict(math.Nextafter(0.5, 1)))
	assert.Equal(t, 0, Predict(0))
	assert.Equal(t, 1, Predict(1))
}

func TestEvaluateMixed(t *testing.T) {
	outcomes := []int{1, 0, 1, 1, 0, 0}
	probs := []float64{0.8, 0.6, 0.4, 0.7, 0.2, 0.3}

	report, err := Evaluate(outcomes, probs)
	require.NoError(t, err)

	// predicted: 1 1 0 1 0 0 -> TP=2 FP=1 TN=2 FN=1
	assert.InDelta(t, 4.0/6.0, report.Accuracy, 1e-12)
	assert.InDelta(t, 2.0/3.0, report.Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, report.Recall, 1e-12)
	// positives {0.8, 0.4, 0.7} vs negatives {0.6, 0.2, 0.3}: 8 of 9 pairs ordered correctly
	assert.InDelta(t, 8.0/9.0, report.ROCAUC, 1e-12)

	c, err := ConfusionMatrix(outcomes, probs)
	require.NoError(t, err)
	assert.Equal(t, Confusion{TruePositives: 2, FalsePositives: 1, TrueNegatives: 2, FalseNegatives: 1}, c)
}

func TestEvaluateRecallWithoutPositives(t *testing.T) {
	c, err := ConfusionMatrix([]int{0, 0}, []float64{0.9, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ratio(c.TruePositives, c.TruePositives+c.FalseNegatives))
}

func TestEvaluateSingleClassIsUndefined(t *testing.T) {
	_, err := Evaluate([]int{1, 1, 1}, []float64{0.9, 0.4, 0.6})
	assert.ErrorIs(t, err, ErrUndefinedMetric)

	_, err = ROCAUC([]int{0, 0}, []float64{0.9, 0.4})
	assert.ErrorIs(t, err, ErrUndefinedMetric)
}

func TestEvaluateInputShape(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []int
		probs    []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []int{1, 0}, []float64{0.3}},
		{"label out of range", []int{1, 2}, []float64{0.3, 0.4}},
		{"probability above one", []int{1, 0}, []float64{1.2, 0.4}},
		{"negative probability", []int{1, 0}, []float64{0.2, -0.1}},
		{"nan probability", []int{1, 0}, []float64{math.NaN(), 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.outcomes, tt.probs)
			assert.ErrorIs(t, err, ErrInputShape)
		})
	}
}

func TestROCAUCTies(t *testing.T) {
	auc, err := ROCAUC([]int{1, 0, 1, 0}, []float64{0.7, 0.7, 0.9, 0.1})
	require.NoError(t, err)
	// pairs: (0.7,0.7)=0.5 (0.7,0.1)=1 (0.9,0.7)=1 (0.9,0.1)=1 -> 3.5/4
	assert.InDelta(t, 0.875, auc, 1e-12)

	auc, err = ROCAUC([]int{0, 1}, []float64{0.9, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, auc)
}

func TestReportMapAndExtras(t *testing.T) {
	report, err := Evaluate([]int{1, 0}, []float64{0.9, 0.1})
	require.NoError(t, err)
	report.WithExtra("skipped_matches", 3)

	m := report.Map()
	assert.Equal(t, 1.0, m["accuracy"])
	assert.Equal(t, 3.0, m["skipped_matches"])
	assert.Len(t, m, 5)
}
