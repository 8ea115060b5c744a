package evaluation

import (
	"fmt"
	"sort"
)

// ROCAUC computes the area under the ROC curve from unthresholded scores using
// the rank-sum statistic. Tied scores share their average rank, which counts a
// tied positive/negative pair as half correct.
func ROCAUC(outcomes []int, scores []float64) (float64, error) {
	if err := validate(outcomes, scores); err != nil {
		return 0, err
	}

	positives := 0
	for _, y := range outcomes {
		positives += y
	}
	negatives := len(outcomes) - positives
	if positives == 0 || negatives == 0 {
		return 0, fmt.Errorf("%w: roc_auc needs both classes in ground truth (positives=%d, negatives=%d)",
			ErrUndefinedMetric, positives, negatives)
	}

	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	rankSum := 0.0
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && scores[idx[end]] == scores[idx[start]] {
			end++
		}
		// ranks are 1-based: positions start..end-1 share (start+1 + end) / 2
		avgRank := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			if outcomes[idx[k]] == 1 {
				rankSum += avgRank
			}
		}
		start = end
	}

	p := float64(positives)
	n := float64(negatives)
	return (rankSum - p*(p+1)/2) / (p * n), nil
}
