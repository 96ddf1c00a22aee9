/*
schedule.go - Statutory capital-allowance schedule table

PURPOSE:
  Maps each TaxStrategy to its year-by-year deduction percentages. The
  schedules are DATA, not code: adding a new statutory schedule means
  registering a new percentage table, never adding a branch.

STRATEGIES:
  StrategyStandardFlat:    Pro-rated straight-line at the category's
                           default rate, accrued daily (handled by the
                           tax evaluator, not by this table)
  StrategyWriteoff40x20:   40% year 1, then 20% in years 2-4
  StrategyWriteoff50x30:   50% / 30% / 20% over 3 years
  StrategyFullWriteoff:    100% in year 1
  StrategyFivePercent20yr: 5% per year for up to 20 years

YEAR BUCKETING:
  A schedule is a pure function (cost, taxYear) -> deduction for that
  year, independent of calendar dates beyond the fiscal-year bucketing
  done by the caller. Years past the end of the table deduct nothing.

EXAMPLE:
  // Cost 100 000 under the 40/20/20/20 schedule
  fixedasset.StrategyWriteoff40x20.YearDeduction(cost, 1) // 40 000
  fixedasset.StrategyWriteoff40x20.YearDeduction(cost, 2) // 20 000
  fixedasset.StrategyWriteoff40x20.YearDeduction(cost, 5) // 0

SEE ALSO:
  - snapshot.go: Accumulates deductions up to the current tax year
  - types.go: AssetCategory carries the strategy selection
*/
package fixedasset

import (
	"sync"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TAX STRATEGY - Closed enumeration of capital-allowance schedules
// =============================================================================

type TaxStrategy string

const (
	StrategyStandardFlat    TaxStrategy = "standard_flat"
	StrategyWriteoff40x20   TaxStrategy = "writeoff_40_20_20_20"
	StrategyWriteoff50x30   TaxStrategy = "writeoff_50_30_20"
	StrategyFullWriteoff    TaxStrategy = "full_writeoff_100"
	StrategyFivePercent20yr TaxStrategy = "five_percent_20_years"
)

// =============================================================================
// SCHEDULE REGISTRY - Strategy -> year percentages
// =============================================================================

var (
	scheduleMu sync.RWMutex

	// Percentages of original cost deductible per tax year, year 1 first.
	schedules = map[TaxStrategy][]decimal.Decimal{
		StrategyWriteoff40x20:   percentages(40, 20, 20, 20),
		StrategyWriteoff50x30:   percentages(50, 30, 20),
		StrategyFullWriteoff:    percentages(100),
		StrategyFivePercent20yr: flatPercentages(5, 20),
	}
)

func percentages(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func flatPercentages(value int64, years int) []decimal.Decimal {
	out := make([]decimal.Decimal, years)
	for i := range out {
		out[i] = decimal.NewFromInt(value)
	}
	return out
}

// RegisterSchedule adds or replaces a statutory schedule table.
// Percentages are of original cost, year 1 first.
func RegisterSchedule(s TaxStrategy, yearPercentages []decimal.Decimal) {
	scheduleMu.Lock()
	defer scheduleMu.Unlock()
	schedules[s] = yearPercentages
}

// KnownStrategy reports whether the strategy is the flat strategy or has a
// registered schedule table.
func KnownStrategy(s TaxStrategy) bool {
	if s == StrategyStandardFlat {
		return true
	}
	scheduleMu.RLock()
	defer scheduleMu.RUnlock()
	_, ok := schedules[s]
	return ok
}

// =============================================================================
// YEAR DEDUCTION - (cost, taxYear) -> deduction
// =============================================================================

var oneHundred = decimal.NewFromInt(100)

// YearDeduction returns the allowance the schedule grants for the given
// 1-based tax year. StrategyStandardFlat returns zero here; the flat
// strategy accrues daily and is handled by the tax evaluator directly.
func (s TaxStrategy) YearDeduction(cost decimal.Decimal, taxYear int) decimal.Decimal {
	scheduleMu.RLock()
	table, ok := schedules[s]
	scheduleMu.RUnlock()
	if !ok || taxYear < 1 || taxYear > len(table) {
		return decimal.Zero
	}
	return cost.Mul(table[taxYear-1]).Div(oneHundred)
}

// AccumulatedDeduction sums YearDeduction over tax years 1..throughYear,
// capped at original cost so the allowance never exceeds what was paid.
func (s TaxStrategy) AccumulatedDeduction(cost decimal.Decimal, throughYear int) decimal.Decimal {
	total := decimal.Zero
	for year := 1; year <= throughYear; year++ {
		total = total.Add(s.YearDeduction(cost, year))
	}
	if total.GreaterThan(cost) {
		return cost
	}
	return total
}
