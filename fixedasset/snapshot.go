/*
snapshot.go - Point-in-time component valuation (both bases)

PURPOSE:
  Answers "what is this component's cost, accumulated depreciation, and
  accumulated tax allowance as of a date?" Snapshots are reconstructed
  from the component's event history on every call: there is no stored
  running balance that can drift out of sync.

THE TWO BASES:
  IFRS (financial reporting):
    Straight-line daily depreciation of the gross carrying amount
    (cost + revaluations - impairments) down to residual value.
    Depreciation stops accruing the day BEFORE disposal.

  Tax (capital allowances):
    Either daily pro-rated flat rate (StrategyStandardFlat) or a
    statutory year-bucket schedule (schedule.go), bucketed by fiscal
    year crossings. Capped at original cost.

ZEROING RULES (both bases):
  - Before acquisition: the component does not exist yet -> all zero
  - On/after disposal date of a disposed/scrapped component: the
    component has left the balance sheet -> all zero

REVALUATION ACCUMULATION:
  The net revaluation impact at a date is the sum of
  (event fair value - ORIGINAL cost) over all events on or before the
  date. Successive revaluations are each measured against original cost,
  not against the then-current carrying amount. Preserved as observed
  behavior; flagged in DESIGN.md as an open product question.

PURITY:
  Both evaluators are free functions taking all context as explicit
  parameters. No closure state, no I/O, no shared mutable state: safe to
  call concurrently or memoize without coordination.

SEE ALSO:
  - movement.go: Differences snapshots into period movement figures
  - schedule.go: Statutory schedule table used by EvaluateTax
*/
package fixedasset

import (
	"github.com/shopspring/decimal"
)

// daysPerYear is the straight-line day basis. 365.25 absorbs leap years
// without calendar-aware day counting.
var daysPerYear = decimal.NewFromFloat(365.25)

// =============================================================================
// IFRS SNAPSHOT
// =============================================================================

// IFRSSnapshot is the financial-reporting state of one component as of a
// target date. All-zero when the component is not on the books at that date.
type IFRSSnapshot struct {
	Cost              decimal.Decimal
	AccumDepreciation decimal.Decimal
	Impairments       decimal.Decimal
	RevaluationImpact decimal.Decimal
	Residual          decimal.Decimal
}

// GrossCarryingAmount is the cost basis actually on the books:
// cost + revaluations - impairments.
func (s IFRSSnapshot) GrossCarryingAmount() decimal.Decimal {
	return s.Cost.Add(s.RevaluationImpact).Sub(s.Impairments)
}

// NetBookValue is the carrying amount net of accumulated depreciation.
func (s IFRSSnapshot) NetBookValue() decimal.Decimal {
	return s.GrossCarryingAmount().Sub(s.AccumDepreciation)
}

// EvaluateIFRS computes the component's financial-reporting snapshot as of
// the target date. Degenerate inputs (zero useful life, missing residual,
// missing impairment) are zero-effect defaults, never faults.
func EvaluateIFRS(c AssetComponent, at Date) IFRSSnapshot {
	if at.Before(c.AcquisitionDate) {
		return IFRSSnapshot{}
	}
	if c.Status.OffBooks() && c.DisposalDate != nil && at.AfterOrEqual(*c.DisposalDate) {
		return IFRSSnapshot{}
	}

	// Depreciation stops accruing the day before disposal.
	cutoff := at
	if c.DisposalDate != nil {
		if lastDay := c.DisposalDate.AddDays(-1); lastDay.Before(cutoff) {
			cutoff = lastDay
		}
	}
	daysHeld := DaysHeldInclusive(c.AcquisitionDate, cutoff)

	revaluation := revaluationImpact(c, at)
	gross := c.Cost.Add(revaluation).Sub(c.ImpairmentLoss)
	depreciable := gross.Sub(c.Residual)
	if depreciable.IsNegative() {
		depreciable = decimal.Zero
	}

	accumulated := decimal.Zero
	if c.UsefulLifeYears > 0 {
		dailyRate := depreciable.
			Div(decimal.NewFromInt(int64(c.UsefulLifeYears))).
			Div(daysPerYear)
		accumulated = dailyRate.Mul(decimal.NewFromInt(int64(daysHeld)))
		// Never depreciate below residual value.
		if accumulated.GreaterThan(depreciable) {
			accumulated = depreciable
		}
	}

	return IFRSSnapshot{
		Cost:              c.Cost,
		AccumDepreciation: accumulated,
		Impairments:       c.ImpairmentLoss,
		RevaluationImpact: revaluation,
		Residual:          c.Residual,
	}
}

// revaluationImpact sums (fair value - original cost) over all revaluation
// events effective on or before the target date.
func revaluationImpact(c AssetComponent, at Date) decimal.Decimal {
	impact := decimal.Zero
	for _, ev := range c.Revaluations {
		if ev.EffectiveAt.BeforeOrEqual(at) {
			impact = impact.Add(ev.FairValue.Sub(c.Cost))
		}
	}
	return impact
}

// =============================================================================
// TAX SNAPSHOT
// =============================================================================

// TaxSnapshot is the tax-basis state of one component as of a target date.
type TaxSnapshot struct {
	Cost         decimal.Decimal
	TaxValue     decimal.Decimal
	AccumTaxDepr decimal.Decimal
	TaxYear      int
}

// EvaluateTax computes the component's tax-basis snapshot as of the target
// date under the category's capital-allowance strategy. The same
// before-acquisition and post-disposal zeroing rules apply as for IFRS.
func EvaluateTax(c AssetComponent, cat AssetCategory, fiscal FiscalCalendar, at Date) TaxSnapshot {
	if at.Before(c.AcquisitionDate) {
		return TaxSnapshot{}
	}
	if c.Status.OffBooks() && c.DisposalDate != nil && at.AfterOrEqual(*c.DisposalDate) {
		return TaxSnapshot{}
	}

	taxYear := fiscal.TaxYearNumber(c.AcquisitionDate, at)

	var accumulated decimal.Decimal
	if cat.Strategy == StrategyStandardFlat {
		// Daily pro-rated straight-line at the category rate, cost-capped.
		daysHeld := DaysHeldInclusive(c.AcquisitionDate, at)
		accumulated = c.Cost.
			Mul(cat.DefaultTaxRate).
			Div(oneHundred).
			Div(daysPerYear).
			Mul(decimal.NewFromInt(int64(daysHeld)))
		if accumulated.GreaterThan(c.Cost) {
			accumulated = c.Cost
		}
	} else {
		accumulated = cat.Strategy.AccumulatedDeduction(c.Cost, taxYear)
	}

	taxValue := c.Cost.Sub(accumulated)
	if taxValue.IsNegative() {
		taxValue = decimal.Zero
	}

	return TaxSnapshot{
		Cost:         c.Cost,
		TaxValue:     taxValue,
		AccumTaxDepr: accumulated,
		TaxYear:      taxYear,
	}
}
