package evaluation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// reportPlaces is the number of decimals shown in reports
const reportPlaces = 4

// Round returns the metric rounded half away from zero for display
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(reportPlaces)
}

// GenerateConsoleReport formats one report per rule for terminal output.
// Rules are listed in the order given.
func GenerateConsoleReport(rules []string, reports map[string]*Report) string {
	var builder strings.Builder
	builder.WriteString("Prediction Accuracy Report\n")
	builder.WriteString("==========================\n")
	for _, rule := range rules {
		r, ok := reports[rule]
		if !ok {
			continue
		}
		builder.WriteString(fmt.Sprintf("%s (%d matches)\n", rule, r.Samples))
		builder.WriteString(fmt.Sprintf("  Accuracy:  %s\n", Round(r.Accuracy).StringFixed(reportPlaces)))
		builder.WriteString(fmt.Sprintf("  Precision: %s\n", Round(r.Precision).StringFixed(reportPlaces)))
		builder.WriteString(fmt.Sprintf("  Recall:    %s\n", Round(r.Recall).StringFixed(reportPlaces)))
		builder.WriteString(fmt.Sprintf("  ROC AUC:   %s\n", Round(r.ROCAUC).StringFixed(reportPlaces)))

		extras := make([]string, 0, len(r.Extras))
		for k := range r.Extras {
			extras = append(extras, k)
		}
		sort.Strings(extras)
		for _, k := range extras {
			builder.WriteString(fmt.Sprintf("  %s: %s\n", k, decimal.NewFromFloat(r.Extras[k]).String()))
		}
	}
	return builder.String()
}

// GenerateCSVExport writes rule,metric,value rows for spreadsheets
func GenerateCSVExport(rules []string, reports map[string]*Report, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var builder strings.Builder
	builder.WriteString("rule,metric,value\n")
	for _, rule := range rules {
		r, ok := reports[rule]
		if !ok {
			continue
		}
		metrics := r.Map()
		names := make([]string, 0, len(metrics))
		for k := range metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, name := range names {
			builder.WriteString(fmt.Sprintf("%s,%s,%s\n", rule, name, Round(metrics[name]).String()))
		}
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
