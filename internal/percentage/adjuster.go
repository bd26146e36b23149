// =============================================================================
// Dynamic Tables - Percentage Adjuster
// =============================================================================
//
// Rounding every row to two decimals independently rarely sums to exactly
// 100.00. The adjuster moves the whole residual into the last entry of the
// sequence so that the displayed column always adds up.
//
// FORMATTING:
//   Percentages are rendered with a decimal comma, two fraction digits and a
//   trailing " %" ("12,50 %"), regardless of the host locale. Downstream
//   document rendering matches these strings verbatim.
//
// =============================================================================

package percentage

import (
	"math"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// ZeroPercent is written to every data row when the total is not positive.
	ZeroPercent = "0,00 %"

	// FullPercent is always written to the total row.
	FullPercent = "100,00 %"

	// residualTolerance is the largest residual left in place.
	residualTolerance = 0.001
)

// printer is fixed to a decimal-comma locale so output never depends on the
// host environment.
var printer = message.NewPrinter(language.Spanish)

// Round2 rounds half away from zero to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// AdjustToSum100 redistributes the rounding residual of already rounded
// percentages so that they sum to 100.00.
//
// PARAMETERS:
//   - percentages: Percentages rounded to two decimals.
//
// RETURNS:
//   - A new slice. When the residual is within tolerance the values are
//     unchanged; otherwise the last element absorbs it, clamped at 0 and
//     rounded again. The input is never modified.
func AdjustToSum100(percentages []float64) []float64 {
	adjusted := slices.Clone(percentages)
	if len(adjusted) == 0 {
		return adjusted
	}

	var sum float64
	for _, p := range percentages {
		sum += p
	}

	diff := Round2(100 - sum)
	if math.Abs(diff) <= residualTolerance {
		return adjusted
	}

	last := len(adjusted) - 1
	adjusted[last] = Round2(math.Max(0, adjusted[last]+diff))
	return adjusted
}

// FormatPercentage renders value as "12,50 %".
func FormatPercentage(value float64) string {
	value = Round2(value)
	if value == 0 {
		// Normalizes negative zero.
		value = 0
	}
	return printer.Sprintf("%.2f", value) + " %"
}

// FormatAll formats each value with FormatPercentage.
func FormatAll(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatPercentage(v)
	}
	return out
}
