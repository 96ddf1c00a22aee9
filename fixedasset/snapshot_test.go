package fixedasset_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/fixedasset"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func date(year int, month time.Month, day int) fixedasset.Date {
	return fixedasset.NewDate(year, month, day)
}

var testDaysPerYear = decimal.NewFromFloat(365.25)

// approxEqual checks two decimals within a small tolerance (derived values
// go through division chains).
func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(dec(0.000001))
}

func machine55k() fixedasset.AssetComponent {
	return fixedasset.AssetComponent{
		ID:              "comp-machine",
		Description:     "CNC machine",
		AcquisitionDate: date(2023, time.January, 15),
		Cost:            dec(55000),
		Residual:        decimal.Zero,
		UsefulLifeYears: 10,
		Status:          fixedasset.StatusActive,
	}
}

func flatCategory(rate float64) fixedasset.AssetCategory {
	return fixedasset.AssetCategory{
		ID:                     "cat-flat",
		Name:                   "Plant & Machinery",
		DefaultUsefulLifeYears: 10,
		DefaultTaxRate:         dec(rate),
		Strategy:               fixedasset.StrategyStandardFlat,
	}
}

func scheduleCategory(s fixedasset.TaxStrategy) fixedasset.AssetCategory {
	return fixedasset.AssetCategory{
		ID:                     "cat-schedule",
		Name:                   "Manufacturing Equipment",
		DefaultUsefulLifeYears: 10,
		Strategy:               s,
	}
}

func fiscal() fixedasset.FiscalCalendar { return fixedasset.DefaultFiscalCalendar() }

// straightLine replicates the engine's daily straight-line arithmetic so
// expectations share the exact division sequence.
func straightLine(cost, residual decimal.Decimal, lifeYears int64, daysHeld int64) decimal.Decimal {
	return cost.Sub(residual).
		Div(decimal.NewFromInt(lifeYears)).
		Div(testDaysPerYear).
		Mul(decimal.NewFromInt(daysHeld))
}

// =============================================================================
// ZEROING RULES
// =============================================================================

func TestEvaluateIFRS_BeforeAcquisition_AllZero(t *testing.T) {
	// GIVEN: A component acquired 2023-01-15
	// WHEN: Evaluated the day before acquisition
	// THEN: The snapshot is all-zero - the component does not exist yet

	comp := machine55k()
	snap := fixedasset.EvaluateIFRS(comp, date(2023, time.January, 14))

	if !snap.Cost.IsZero() || !snap.AccumDepreciation.IsZero() || !snap.RevaluationImpact.IsZero() {
		t.Errorf("expected all-zero snapshot before acquisition, got %+v", snap)
	}
}

func TestEvaluateTax_BeforeAcquisition_AllZero(t *testing.T) {
	comp := machine55k()
	snap := fixedasset.EvaluateTax(comp, flatCategory(20), fiscal(), date(2022, time.December, 31))

	if !snap.Cost.IsZero() || !snap.AccumTaxDepr.IsZero() || snap.TaxYear != 0 {
		t.Errorf("expected all-zero tax snapshot before acquisition, got %+v", snap)
	}
}

func TestEvaluateIFRS_OnAndAfterDisposal_AllZero(t *testing.T) {
	// GIVEN: A component disposed 2023-07-01
	// WHEN: Evaluated on the disposal day and after
	// THEN: The snapshot is all-zero - the component has left the balance sheet

	comp := machine55k().Disposed(date(2023, time.July, 1), dec(40000))

	for _, at := range []fixedasset.Date{
		date(2023, time.July, 1),
		date(2023, time.December, 31),
	} {
		snap := fixedasset.EvaluateIFRS(comp, at)
		if !snap.Cost.IsZero() || !snap.AccumDepreciation.IsZero() {
			t.Errorf("at %s: expected all-zero snapshot, got %+v", at, snap)
		}
		taxSnap := fixedasset.EvaluateTax(comp, flatCategory(20), fiscal(), at)
		if !taxSnap.Cost.IsZero() || !taxSnap.AccumTaxDepr.IsZero() {
			t.Errorf("at %s: expected all-zero tax snapshot, got %+v", at, taxSnap)
		}
	}
}

func TestEvaluateIFRS_DayBeforeDisposal_StillOnBooks(t *testing.T) {
	// GIVEN: A component disposed 2023-07-01
	// WHEN: Evaluated on 2023-06-30
	// THEN: The full carrying value is still on the books

	comp := machine55k().Disposed(date(2023, time.July, 1), dec(40000))
	snap := fixedasset.EvaluateIFRS(comp, date(2023, time.June, 30))

	if !snap.Cost.Equal(dec(55000)) {
		t.Errorf("expected cost 55000 on the day before disposal, got %s", snap.Cost)
	}
	// Jan 15 through Jun 30 inclusive = 167 days
	want := straightLine(dec(55000), decimal.Zero, 10, 167)
	if !approxEqual(snap.AccumDepreciation, want) {
		t.Errorf("expected accumulated depreciation %s, got %s", want, snap.AccumDepreciation)
	}
}

// =============================================================================
// STRAIGHT-LINE DEPRECIATION
// =============================================================================

func TestEvaluateIFRS_StraightLine_DayAccurate(t *testing.T) {
	// GIVEN: Cost 55000, residual 0, useful life 10 years, acquired 2023-01-15
	// WHEN: Evaluated at 2023-12-31
	// THEN: Accumulated depreciation covers Jan 15 through Dec 31 inclusive (351 days)

	comp := machine55k()
	snap := fixedasset.EvaluateIFRS(comp, date(2023, time.December, 31))

	want := straightLine(dec(55000), decimal.Zero, 10, 351)
	if !approxEqual(snap.AccumDepreciation, want) {
		t.Errorf("expected %s, got %s", want, snap.AccumDepreciation)
	}
}

func TestEvaluateIFRS_AcquisitionDay_OneDayHeld(t *testing.T) {
	comp := machine55k()
	snap := fixedasset.EvaluateIFRS(comp, comp.AcquisitionDate)

	want := straightLine(dec(55000), decimal.Zero, 10, 1)
	if !approxEqual(snap.AccumDepreciation, want) {
		t.Errorf("expected one day of depreciation %s, got %s", want, snap.AccumDepreciation)
	}
}

func TestEvaluateIFRS_DepreciationFloor_NeverBelowResidual(t *testing.T) {
	// GIVEN: A component far past its useful life, with a residual value
	// WHEN: Evaluated decades after acquisition
	// THEN: Accumulated depreciation is capped at cost - residual

	comp := machine55k()
	comp.AcquisitionDate = date(1990, time.March, 1)
	comp.Residual = dec(5000)

	snap := fixedasset.EvaluateIFRS(comp, date(2026, time.January, 1))

	if !snap.AccumDepreciation.Equal(dec(50000)) {
		t.Errorf("expected depreciation capped at 50000, got %s", snap.AccumDepreciation)
	}
	if !snap.NetBookValue().Equal(dec(5000)) {
		t.Errorf("carrying value should floor at residual 5000, got %s", snap.NetBookValue())
	}
}

func TestEvaluateIFRS_ZeroUsefulLife_NoDepreciation(t *testing.T) {
	// GIVEN: A component with no useful life configured
	// WHEN: Evaluated at any date
	// THEN: Zero depreciation, not a divide-by-zero fault

	comp := machine55k()
	comp.UsefulLifeYears = 0

	snap := fixedasset.EvaluateIFRS(comp, date(2025, time.June, 30))
	if !snap.AccumDepreciation.IsZero() {
		t.Errorf("expected zero depreciation for zero useful life, got %s", snap.AccumDepreciation)
	}
}

// =============================================================================
// REVALUATIONS AND IMPAIRMENTS
// =============================================================================

func TestEvaluateIFRS_RevaluationImpact_SummedAgainstOriginalCost(t *testing.T) {
	// GIVEN: Two revaluations, 60000 then 58000, on a 55000 component
	// WHEN: Evaluated after both
	// THEN: Impact = (60000-55000) + (58000-55000) = 8000
	//       (each event measured against original cost, not the prior one)

	comp := machine55k().
		Revalued(date(2023, time.June, 1), dec(60000)).
		Revalued(date(2023, time.September, 1), dec(58000))

	snap := fixedasset.EvaluateIFRS(comp, date(2023, time.December, 31))
	if !snap.RevaluationImpact.Equal(dec(8000)) {
		t.Errorf("expected revaluation impact 8000, got %s", snap.RevaluationImpact)
	}
}

func TestEvaluateIFRS_RevaluationAfterTargetDate_Excluded(t *testing.T) {
	comp := machine55k().Revalued(date(2023, time.September, 1), dec(60000))

	snap := fixedasset.EvaluateIFRS(comp, date(2023, time.August, 31))
	if !snap.RevaluationImpact.IsZero() {
		t.Errorf("future revaluation must not count, got %s", snap.RevaluationImpact)
	}
}

func TestEvaluateIFRS_Impairment_ReducesDepreciableAmount(t *testing.T) {
	// GIVEN: A 55000 component impaired by 15000
	// WHEN: Evaluated well past its useful life
	// THEN: Depreciation caps at the impaired depreciable amount (40000)

	comp := machine55k().Impaired(dec(15000))
	comp.AcquisitionDate = date(2000, time.January, 1)

	snap := fixedasset.EvaluateIFRS(comp, date(2026, time.January, 1))
	if !snap.AccumDepreciation.Equal(dec(40000)) {
		t.Errorf("expected depreciation capped at 40000 after impairment, got %s", snap.AccumDepreciation)
	}
	if !snap.Impairments.Equal(dec(15000)) {
		t.Errorf("expected impairments 15000, got %s", snap.Impairments)
	}
}

// =============================================================================
// TAX BASIS - FLAT STRATEGY
// =============================================================================

func TestEvaluateTax_FlatRate_ProRatedDaily(t *testing.T) {
	// GIVEN: Cost 55000 at 20%/year flat, acquired 2023-01-15
	// WHEN: Evaluated at 2023-12-31 (351 days held)
	// THEN: Allowance = 55000 * 20% / 365.25 * 351

	comp := machine55k()
	snap := fixedasset.EvaluateTax(comp, flatCategory(20), fiscal(), date(2023, time.December, 31))

	want := dec(55000).Mul(dec(20)).Div(dec(100)).Div(testDaysPerYear).Mul(decimal.NewFromInt(351))
	if !approxEqual(snap.AccumTaxDepr, want) {
		t.Errorf("expected %s, got %s", want, snap.AccumTaxDepr)
	}
	if !approxEqual(snap.TaxValue, dec(55000).Sub(want)) {
		t.Errorf("tax value should be cost minus allowance, got %s", snap.TaxValue)
	}
}

func TestEvaluateTax_FlatRate_CappedAtCost(t *testing.T) {
	// GIVEN: A 20%/year flat allowance running for 20 years
	// WHEN: Evaluated far past full write-off
	// THEN: Accumulated allowance equals cost exactly; tax value is zero

	comp := machine55k()
	comp.AcquisitionDate = date(2000, time.January, 1)

	snap := fixedasset.EvaluateTax(comp, flatCategory(20), fiscal(), date(2026, time.January, 1))
	if !snap.AccumTaxDepr.Equal(dec(55000)) {
		t.Errorf("allowance must cap at cost, got %s", snap.AccumTaxDepr)
	}
	if !snap.TaxValue.IsZero() {
		t.Errorf("tax value must floor at zero, got %s", snap.TaxValue)
	}
}

// =============================================================================
// TAX BASIS - STATUTORY SCHEDULES AND FISCAL BUCKETING
// =============================================================================

func TestEvaluateTax_Schedule40x20_AccumulatesByFiscalYear(t *testing.T) {
	// GIVEN: Cost 100000 under the 40/20/20/20 schedule, acquired at the
	//        start of a fiscal year (July 1, with a June 30 year-end)
	// WHEN: Evaluated across successive fiscal years
	// THEN: Year 1 deducts 40000, years 2-4 each 20000, year 5+ nothing

	comp := machine55k()
	comp.Cost = dec(100000)
	comp.AcquisitionDate = date(2020, time.July, 1)
	cat := scheduleCategory(fixedasset.StrategyWriteoff40x20)

	cases := []struct {
		at       fixedasset.Date
		taxYear  int
		expected float64
	}{
		{date(2021, time.June, 30), 1, 40000},
		{date(2022, time.June, 30), 2, 60000},
		{date(2023, time.June, 30), 3, 80000},
		{date(2024, time.June, 30), 4, 100000},
		{date(2026, time.June, 30), 6, 100000}, // never exceeds cost
	}

	for _, tc := range cases {
		snap := fixedasset.EvaluateTax(comp, cat, fiscal(), tc.at)
		if snap.TaxYear != tc.taxYear {
			t.Errorf("at %s: expected tax year %d, got %d", tc.at, tc.taxYear, snap.TaxYear)
		}
		if !snap.AccumTaxDepr.Equal(dec(tc.expected)) {
			t.Errorf("at %s: expected accumulated allowance %v, got %s", tc.at, tc.expected, snap.AccumTaxDepr)
		}
	}
}

func TestEvaluateTax_FiscalYearCrossing_EntersYearTwoImmediately(t *testing.T) {
	// GIVEN: A component acquired 2023-06-20, ten days before the June 30
	//        fiscal year-end
	// WHEN: Evaluated on 2023-07-05
	// THEN: The holding is already in tax year 2 - bucketing is by
	//       fiscal-year crossings, not elapsed anniversaries

	comp := machine55k()
	comp.AcquisitionDate = date(2023, time.June, 20)

	snap := fixedasset.EvaluateTax(comp, scheduleCategory(fixedasset.StrategyWriteoff50x30), fiscal(), date(2023, time.July, 5))
	if snap.TaxYear != 2 {
		t.Errorf("expected tax year 2 just after fiscal year-end, got %d", snap.TaxYear)
	}
}

func TestEvaluateTax_FullWriteoff_EntireCostInYearOne(t *testing.T) {
	comp := machine55k()
	cat := scheduleCategory(fixedasset.StrategyFullWriteoff)

	snap := fixedasset.EvaluateTax(comp, cat, fiscal(), date(2023, time.March, 1))
	if !snap.AccumTaxDepr.Equal(dec(55000)) {
		t.Errorf("expected full write-off in year one, got %s", snap.AccumTaxDepr)
	}
	if !snap.TaxValue.IsZero() {
		t.Errorf("expected zero tax value after full write-off, got %s", snap.TaxValue)
	}
}

func TestFiscalCalendar_YearLabels(t *testing.T) {
	fc := fixedasset.DefaultFiscalCalendar()

	cases := []struct {
		d    fixedasset.Date
		want int
	}{
		{date(2023, time.June, 30), 2023},
		{date(2023, time.July, 1), 2024},
		{date(2024, time.January, 10), 2024},
	}
	for _, tc := range cases {
		if got := fc.FiscalYear(tc.d); got != tc.want {
			t.Errorf("FiscalYear(%s) = %d, want %d", tc.d, got, tc.want)
		}
	}
}
