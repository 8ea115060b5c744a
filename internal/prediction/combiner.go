package prediction

import "fmt"

// Rule selects how the three signals are combined
type Rule string

const (
	RuleAverage  Rule = "average"
	RuleWeighted Rule = "weighted"
)

// Rules lists every supported rule in report order
var Rules = []Rule{RuleAverage, RuleWeighted}

// ParseRule converts a configuration or flag value into a rule
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case RuleAverage, RuleWeighted:
		return Rule(s), nil
	default:
		return "", fmt.Errorf("unknown combination rule %q", s)
	}
}

// Average weights blue synergy, red weakness and blue matchup equally
func Average(s Summary) float64 {
	redFactor := 1 - s.RedSynergy
	return (s.BlueSynergy + redFactor + s.BlueMatchup) / 3
}

// Weighted counts the matchup signal twice as much as either synergy term
func Weighted(s Summary) float64 {
	redFactor := 1 - s.RedSynergy
	return 0.25*s.BlueSynergy + 0.25*redFactor + 0.5*s.BlueMatchup
}

// Combine applies the named rule
func Combine(rule Rule, s Summary) (float64, error) {
	switch rule {
	case RuleAverage:
		return Average(s), nil
	case RuleWeighted:
		return Weighted(s), nil
	default:
		return 0, fmt.Errorf("unknown combination rule %q", rule)
	}
}
