/*
Package fixedasset provides the core fixed-asset valuation engine.

PURPOSE:
  This package contains the pure types and algorithms for computing
  point-in-time asset values and period-over-period movement under two
  parallel accounting bases: a financial-reporting basis (straight-line
  depreciation with revaluation/impairment support) and a tax basis
  (statutory capital-allowance schedules).

KEY CONCEPTS IN THIS FILE (types.go):
  - AssetComponent: A separately depreciable unit within an asset
  - RevaluationEvent: A point-in-time fair-value override
  - AssetCategory: Configuration defaults and tax-strategy selection
  - DepreciationCalculation: The per-asset movement result record

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a pure function of its inputs
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Immutability: Components are values; updates return new copies
  4. Tolerance: Partially-populated records degrade to zero effects,
     never to panics or errors

USAGE:
  comp := fixedasset.AssetComponent{
      ID:              "comp-1",
      AcquisitionDate: fixedasset.NewDate(2023, time.January, 15),
      Cost:            decimal.NewFromInt(55000),
      UsefulLifeYears: 10,
      Status:          fixedasset.StatusActive,
  }
  snap := fixedasset.EvaluateIFRS(comp, fixedasset.NewDate(2023, time.December, 31))

SEE ALSO:
  - snapshot.go: Point-in-time valuation under both bases
  - movement.go: Period movement derivation and aggregation
  - schedule.go: Statutory capital-allowance schedule table
*/
package fixedasset

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type AssetID string
type ComponentID string
type CategoryID string
type LocationID string

// =============================================================================
// COMPONENT STATUS - Lifecycle states
// =============================================================================

type ComponentStatus string

const (
	StatusActive   ComponentStatus = "active"
	StatusDisposed ComponentStatus = "disposed" // Sold; disposal is terminal
	StatusScrapped ComponentStatus = "scrapped" // Written off without proceeds
	StatusImpaired ComponentStatus = "impaired" // Carrying value written down
)

// OffBooks reports whether the status removes the component from the
// balance sheet once its disposal date is reached.
func (s ComponentStatus) OffBooks() bool {
	return s == StatusDisposed || s == StatusScrapped
}

// =============================================================================
// REVALUATION EVENT - Fair-value override at a point in time
// =============================================================================

// RevaluationEvent records a fair-value assessment of a component.
//
// Multiple events accumulate: the net revaluation impact at a target date
// is the sum of (FairValue - component cost) over all events on or before
// that date, each measured against ORIGINAL cost. See snapshot.go for the
// accumulation rule and DESIGN.md for why it is preserved as-is.
type RevaluationEvent struct {
	EffectiveAt Date
	FairValue   decimal.Decimal
}

// =============================================================================
// ASSET COMPONENT - Separately depreciable unit
// =============================================================================

// AssetComponent is a separately depreciable part of an asset
// (component accounting). A component has at most one disposal event and
// disposal is terminal: no transition back to Active is modeled.
type AssetComponent struct {
	ID          ComponentID
	Description string

	AcquisitionDate Date
	Cost            decimal.Decimal
	Residual        decimal.Decimal
	UsefulLifeYears int

	Status ComponentStatus

	// Set only when Status is Disposed or Scrapped.
	DisposalDate     *Date
	DisposalProceeds decimal.Decimal

	// Ordered by EffectiveAt ascending.
	Revaluations []RevaluationEvent

	// Cumulative impairment loss recognized against this component.
	ImpairmentLoss decimal.Decimal
}

// DisposedWithin reports whether the component's disposal date falls inside
// [from, to]. Components without a disposal date never match.
func (c AssetComponent) DisposedWithin(from, to Date) bool {
	if c.DisposalDate == nil {
		return false
	}
	d := *c.DisposalDate
	return d.AfterOrEqual(from) && d.BeforeOrEqual(to)
}

// =============================================================================
// ASSET - A registered asset with its components
// =============================================================================

type Asset struct {
	ID          AssetID
	AssetNumber string
	Description string
	CategoryID  CategoryID
	LocationID  LocationID
	Components  []AssetComponent
}

// =============================================================================
// ASSET CATEGORY - Defaults and tax-strategy configuration
// =============================================================================

// AssetCategory supplies per-category defaults. The useful life applies to
// components registered without one; the tax rate feeds the flat-rate
// strategy; the strategy selects a statutory schedule from schedule.go.
type AssetCategory struct {
	ID   CategoryID
	Name string

	DefaultUsefulLifeYears int
	DefaultTaxRate         decimal.Decimal // Percent, e.g. 20 for 20%/year
	ResidualPercent        decimal.Decimal // Percent of cost
	Strategy               TaxStrategy
}

// AssetLocation is a physical or organizational grouping for reporting.
type AssetLocation struct {
	ID   LocationID
	Name string
}

// =============================================================================
// DEPRECIATION CALCULATION - Per-asset period movement result
// =============================================================================

// DepreciationCalculation is the movement-schedule row for one asset over a
// reporting period. Cost figures are on the gross carrying basis
// (cost + revaluations - impairments), so the roll-forward identities hold:
//
//	ClosingCost      = OpeningCost + Additions - Disposals
//	                   + Revaluations - Impairments
//	ClosingAccumDepr = OpeningAccumDepr + Depreciation - DisposalAccumDepr
//
// and the same for the tax basis. All fields are plain decimal amounts in
// the caller's base currency; no currency semantics are modeled.
type DepreciationCalculation struct {
	AssetID AssetID

	// Cost-basis movement (financial-reporting basis).
	OpeningCost  decimal.Decimal
	Additions    decimal.Decimal
	Disposals    decimal.Decimal
	Revaluations decimal.Decimal // May be negative
	Impairments  decimal.Decimal // May be negative (net reversal)
	ClosingCost  decimal.Decimal

	// Accumulated depreciation and net book value.
	OpeningAccumDepr  decimal.Decimal
	Depreciation      decimal.Decimal // Charge for the period
	DisposalAccumDepr decimal.Decimal // Accumulated depreciation removed on disposal
	ClosingAccumDepr  decimal.Decimal
	OpeningNBV        decimal.Decimal
	ClosingNBV        decimal.Decimal

	// Tax basis.
	OpeningTaxValue decimal.Decimal
	TaxDeduction    decimal.Decimal // Allowance for the period
	DisposalTaxDepr decimal.Decimal // Accumulated allowance removed on disposal
	ClosingTaxValue decimal.Decimal
	AccumTaxDepr    decimal.Decimal // Closing accumulated allowance
	TaxYear         int             // Max across components; 0 if none active

	// Disposal outcomes. Meaningful only when HasDisposal is true.
	HasDisposal      bool
	DisposalProceeds decimal.Decimal
	ProfitOnDisposal decimal.Decimal // Signed: positive = gain
	Recoupment       decimal.Decimal
}

// ZeroCalculation returns an all-zero result tagged with the asset ID.
// This is the defined degenerate output for an asset whose category cannot
// be resolved: the report row renders as unresolved instead of aborting
// the batch.
func ZeroCalculation(id AssetID) DepreciationCalculation {
	return DepreciationCalculation{AssetID: id}
}
