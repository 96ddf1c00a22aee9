/*
movement.go - Period movement derivation and aggregation

PURPOSE:
  Derives one reporting period's movement figures (additions, disposals,
  depreciation charge, tax deduction, disposal profit/loss, recoupment)
  by differencing point-in-time snapshots, then aggregates across the
  components of an asset and across assets.

HOW MOVEMENT IS DERIVED:
  For a period [start, end], each component is evaluated at start-1
  (opening) and end (closing) under both bases. If the component was
  disposed inside the period it is also evaluated at disposal-1: those
  are the figures actually removed from the books, and the closing-side
  revaluation/impairment deltas are measured there so the cost
  roll-forward identity holds exactly:

    Closing = Opening + Additions - Disposals + Revaluations - Impairments

DEPRECIATION CHARGE CONVENTION:
  The disposed component's accumulated depreciation is added back so the
  charge reflects depreciation incurred DURING the period even though
  the component left the books before period end:

    Closing = Opening + Charge - RemovedOnDisposal

  The tax deduction follows the identical add-back on tax figures.

ERROR MODEL:
  Category not found is a foreseeable data-integrity state, not an
  exception: the asset yields an all-zero result tagged with its ID so a
  report can render with the row visibly unresolved.

SEE ALSO:
  - snapshot.go: The point-in-time evaluators this calculator differences
  - types.go: DepreciationCalculation result record
*/
package fixedasset

import (
	"github.com/shopspring/decimal"
)

// Calculator derives period movement figures. Purely functional: safe to
// share across goroutines and reuse for any number of assets.
type Calculator struct {
	Fiscal FiscalCalendar
}

// NewCalculator returns a Calculator on the default June 30 fiscal year-end.
func NewCalculator() Calculator {
	return Calculator{Fiscal: DefaultFiscalCalendar()}
}

// =============================================================================
// COMPONENT MOVEMENT
// =============================================================================

// ComponentMovement is one component's contribution to the asset-level
// movement schedule. Fields mirror DepreciationCalculation.
type ComponentMovement struct {
	ComponentID ComponentID

	OpeningCost  decimal.Decimal
	Additions    decimal.Decimal
	Disposals    decimal.Decimal
	Revaluations decimal.Decimal
	Impairments  decimal.Decimal
	ClosingCost  decimal.Decimal

	OpeningAccumDepr  decimal.Decimal
	Depreciation      decimal.Decimal
	DisposalAccumDepr decimal.Decimal
	ClosingAccumDepr  decimal.Decimal

	OpeningTaxValue decimal.Decimal
	TaxDeduction    decimal.Decimal
	DisposalTaxDepr decimal.Decimal
	ClosingTaxValue decimal.Decimal
	AccumTaxDepr    decimal.Decimal
	TaxYear         int

	Disposed         bool
	DisposalProceeds decimal.Decimal
	ProfitOnDisposal decimal.Decimal
	Recoupment       decimal.Decimal
}

// ComponentMovement computes one component's movement over the period.
// Category defaults (useful life, residual percentage) fill in attributes
// the component record leaves unset.
func (calc Calculator) ComponentMovement(c AssetComponent, cat AssetCategory, p Period) ComponentMovement {
	c = withCategoryDefaults(c, cat)

	openingDate := p.Start.AddDays(-1)
	opening := EvaluateIFRS(c, openingDate)
	closing := EvaluateIFRS(c, p.End)
	openingTax := EvaluateTax(c, cat, calc.Fiscal, openingDate)
	closingTax := EvaluateTax(c, cat, calc.Fiscal, p.End)

	m := ComponentMovement{
		ComponentID:      c.ID,
		OpeningCost:      opening.GrossCarryingAmount(),
		ClosingCost:      closing.GrossCarryingAmount(),
		OpeningAccumDepr: opening.AccumDepreciation,
		ClosingAccumDepr: closing.AccumDepreciation,
		OpeningTaxValue:  openingTax.TaxValue,
		ClosingTaxValue:  closingTax.TaxValue,
		AccumTaxDepr:     closingTax.AccumTaxDepr,
		TaxYear:          closingTax.TaxYear,
	}

	if p.Contains(c.AcquisitionDate) {
		m.Additions = c.Cost
	}

	if c.Status.OffBooks() && c.DisposedWithin(p.Start, p.End) {
		// The figures removed from the books are those on the last day
		// before disposal, not the (zeroed) closing snapshot.
		lastDay := c.DisposalDate.AddDays(-1)
		pre := EvaluateIFRS(c, lastDay)
		preTax := EvaluateTax(c, cat, calc.Fiscal, lastDay)

		m.Disposed = true
		m.Disposals = pre.GrossCarryingAmount()
		m.DisposalAccumDepr = pre.AccumDepreciation
		m.DisposalTaxDepr = preTax.AccumTaxDepr
		m.Revaluations = pre.RevaluationImpact.Sub(opening.RevaluationImpact)
		m.Impairments = pre.Impairments.Sub(opening.Impairments)

		netBookValue := m.Disposals.Sub(m.DisposalAccumDepr)
		m.DisposalProceeds = c.DisposalProceeds
		m.ProfitOnDisposal = c.DisposalProceeds.Sub(netBookValue)
		m.Recoupment = recoupment(c.DisposalProceeds, preTax)
		if m.TaxYear < preTax.TaxYear {
			m.TaxYear = preTax.TaxYear
		}
	} else {
		m.Revaluations = closing.RevaluationImpact.Sub(opening.RevaluationImpact)
		m.Impairments = closing.Impairments.Sub(opening.Impairments)
	}

	// Movement-schedule convention: Closing = Opening + Charge - Removed.
	m.Depreciation = chargeFor(m.ClosingAccumDepr, m.OpeningAccumDepr, m.DisposalAccumDepr)
	m.TaxDeduction = chargeFor(m.AccumTaxDepr, openingTax.AccumTaxDepr, m.DisposalTaxDepr)

	return m
}

// chargeFor solves the roll-forward for the period charge, floored at zero.
func chargeFor(closing, opening, removedOnDisposal decimal.Decimal) decimal.Decimal {
	charge := closing.Sub(opening).Add(removedOnDisposal)
	if charge.IsNegative() {
		return decimal.Zero
	}
	return charge
}

// recoupment computes the taxable clawback on disposal: the excess of
// proceeds over tax value, never exceeding the allowances actually claimed.
func recoupment(proceeds decimal.Decimal, atDisposal TaxSnapshot) decimal.Decimal {
	excess := proceeds.Sub(atDisposal.TaxValue)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	claimed := atDisposal.Cost.Sub(atDisposal.TaxValue)
	if excess.GreaterThan(claimed) {
		return claimed
	}
	return excess
}

// withCategoryDefaults fills unset component attributes from the category.
func withCategoryDefaults(c AssetComponent, cat AssetCategory) AssetComponent {
	if c.UsefulLifeYears <= 0 {
		c.UsefulLifeYears = cat.DefaultUsefulLifeYears
	}
	if c.Residual.IsZero() && cat.ResidualPercent.IsPositive() {
		c.Residual = c.Cost.Mul(cat.ResidualPercent).Div(oneHundred)
	}
	return c
}

// =============================================================================
// ASSET MOVEMENT - Aggregate components into one result per asset
// =============================================================================

// AssetMovement aggregates the movement of all the asset's components into
// one DepreciationCalculation. A nil category yields the all-zero result:
// an unresolved category is a data-integrity state, not an error.
func (calc Calculator) AssetMovement(a Asset, cat *AssetCategory, p Period) DepreciationCalculation {
	if cat == nil {
		return ZeroCalculation(a.ID)
	}

	result := ZeroCalculation(a.ID)
	for _, comp := range a.Components {
		m := calc.ComponentMovement(comp, *cat, p)

		result.OpeningCost = result.OpeningCost.Add(m.OpeningCost)
		result.Additions = result.Additions.Add(m.Additions)
		result.Disposals = result.Disposals.Add(m.Disposals)
		result.Revaluations = result.Revaluations.Add(m.Revaluations)
		result.Impairments = result.Impairments.Add(m.Impairments)
		result.ClosingCost = result.ClosingCost.Add(m.ClosingCost)

		result.OpeningAccumDepr = result.OpeningAccumDepr.Add(m.OpeningAccumDepr)
		result.Depreciation = result.Depreciation.Add(m.Depreciation)
		result.DisposalAccumDepr = result.DisposalAccumDepr.Add(m.DisposalAccumDepr)
		result.ClosingAccumDepr = result.ClosingAccumDepr.Add(m.ClosingAccumDepr)

		result.OpeningTaxValue = result.OpeningTaxValue.Add(m.OpeningTaxValue)
		result.TaxDeduction = result.TaxDeduction.Add(m.TaxDeduction)
		result.DisposalTaxDepr = result.DisposalTaxDepr.Add(m.DisposalTaxDepr)
		result.ClosingTaxValue = result.ClosingTaxValue.Add(m.ClosingTaxValue)
		result.AccumTaxDepr = result.AccumTaxDepr.Add(m.AccumTaxDepr)

		if m.TaxYear > result.TaxYear {
			result.TaxYear = m.TaxYear
		}
		if m.Disposed {
			result.HasDisposal = true
			result.DisposalProceeds = result.DisposalProceeds.Add(m.DisposalProceeds)
			result.ProfitOnDisposal = result.ProfitOnDisposal.Add(m.ProfitOnDisposal)
			result.Recoupment = result.Recoupment.Add(m.Recoupment)
		}
	}

	result.OpeningNBV = result.OpeningCost.Sub(result.OpeningAccumDepr)
	result.ClosingNBV = result.ClosingCost.Sub(result.ClosingAccumDepr)
	return result
}

// =============================================================================
// CONSOLIDATION - Sum across assets
// =============================================================================

// Consolidate sums asset-level results into one consolidated row.
// TaxYear takes the maximum, not the sum; disposal outcomes only
// contribute from assets that actually disposed.
func Consolidate(results []DepreciationCalculation) DepreciationCalculation {
	var total DepreciationCalculation
	for _, r := range results {
		total.OpeningCost = total.OpeningCost.Add(r.OpeningCost)
		total.Additions = total.Additions.Add(r.Additions)
		total.Disposals = total.Disposals.Add(r.Disposals)
		total.Revaluations = total.Revaluations.Add(r.Revaluations)
		total.Impairments = total.Impairments.Add(r.Impairments)
		total.ClosingCost = total.ClosingCost.Add(r.ClosingCost)

		total.OpeningAccumDepr = total.OpeningAccumDepr.Add(r.OpeningAccumDepr)
		total.Depreciation = total.Depreciation.Add(r.Depreciation)
		total.DisposalAccumDepr = total.DisposalAccumDepr.Add(r.DisposalAccumDepr)
		total.ClosingAccumDepr = total.ClosingAccumDepr.Add(r.ClosingAccumDepr)
		total.OpeningNBV = total.OpeningNBV.Add(r.OpeningNBV)
		total.ClosingNBV = total.ClosingNBV.Add(r.ClosingNBV)

		total.OpeningTaxValue = total.OpeningTaxValue.Add(r.OpeningTaxValue)
		total.TaxDeduction = total.TaxDeduction.Add(r.TaxDeduction)
		total.DisposalTaxDepr = total.DisposalTaxDepr.Add(r.DisposalTaxDepr)
		total.ClosingTaxValue = total.ClosingTaxValue.Add(r.ClosingTaxValue)
		total.AccumTaxDepr = total.AccumTaxDepr.Add(r.AccumTaxDepr)

		if r.TaxYear > total.TaxYear {
			total.TaxYear = r.TaxYear
		}
		if r.HasDisposal {
			total.HasDisposal = true
			total.DisposalProceeds = total.DisposalProceeds.Add(r.DisposalProceeds)
			total.ProfitOnDisposal = total.ProfitOnDisposal.Add(r.ProfitOnDisposal)
			total.Recoupment = total.Recoupment.Add(r.Recoupment)
		}
	}
	return total
}
