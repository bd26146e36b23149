package table

import "github.com/ginjaninja78/dynamic-tables/internal/config"

// CalculationKind says which calculations a table needs after a change.
type CalculationKind string

const (
	KindBoth        CalculationKind = "both"
	KindPercentages CalculationKind = "percentages"
	KindTotals      CalculationKind = "totals"
	KindNone        CalculationKind = "none"
)

// ShouldComputePercentages is true when a percentage field or a sex
// breakdown is configured and auto-computation was not switched off.
func ShouldComputePercentages(cfg *config.TableConfig) bool {
	return (cfg.PercentageField != "" || cfg.SexBreakdown != nil) && cfg.AutoCompute()
}

// ShouldComputeTotals is true when a value field is configured.
func ShouldComputeTotals(cfg *config.TableConfig) bool {
	return cfg.TotalValueField != ""
}

// ResolveCalculationKind combines the two predicates above.
func ResolveCalculationKind(cfg *config.TableConfig) CalculationKind {
	pct, tot := ShouldComputePercentages(cfg), ShouldComputeTotals(cfg)
	switch {
	case pct && tot:
		return KindBoth
	case pct:
		return KindPercentages
	case tot:
		return KindTotals
	}
	return KindNone
}

// FieldAffectsCalculation reports whether a change to field requires a
// recomputation.
func FieldAffectsCalculation(cfg *config.TableConfig, field string) bool {
	if field == "" {
		return false
	}
	return cfg.AffectsCalculation(field) || field == cfg.TotalValueField
}
