package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/asset-register/factory"
	"github.com/warp/asset-register/fixedasset"
)

func TestParseCategory_Machinery(t *testing.T) {
	f := factory.NewCategoryFactory()

	cat, err := f.ParseCategory(factory.MachineryJSON("cat-machinery"))
	require.NoError(t, err)

	assert.Equal(t, fixedasset.CategoryID("cat-machinery"), cat.ID)
	assert.Equal(t, "Plant & Machinery", cat.Name)
	assert.Equal(t, 10, cat.DefaultUsefulLifeYears)
	assert.True(t, cat.DefaultTaxRate.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, fixedasset.StrategyStandardFlat, cat.Strategy)
}

func TestParseCategory_DefaultsToFlatStrategy(t *testing.T) {
	f := factory.NewCategoryFactory()

	cat, err := f.ParseCategory(`{"id": "cat-misc", "name": "Miscellaneous"}`)
	require.NoError(t, err)
	assert.Equal(t, fixedasset.StrategyStandardFlat, cat.Strategy)
}

func TestParseCategory_UnknownStrategy_Rejected(t *testing.T) {
	f := factory.NewCategoryFactory()

	_, err := f.ParseCategory(`{"id": "cat-bad", "tax_strategy": "no_such_schedule"}`)
	assert.ErrorIs(t, err, fixedasset.ErrUnknownStrategy)
}

func TestParseCategory_MissingID_Rejected(t *testing.T) {
	f := factory.NewCategoryFactory()

	_, err := f.ParseCategory(`{"name": "No ID"}`)
	assert.Error(t, err)
}

func TestParseCategory_InvalidJSON_Rejected(t *testing.T) {
	f := factory.NewCategoryFactory()

	_, err := f.ParseCategory(`{not json`)
	assert.Error(t, err)
}

func TestParseCategory_CustomSchedule_Registered(t *testing.T) {
	f := factory.NewCategoryFactory()

	cat, err := f.ParseCategory(`{
		"id": "cat-tooling",
		"name": "Tooling",
		"tax_strategy": "factory_writeoff_25_25_25_25",
		"schedule": [25, 25, 25, 25]
	}`)
	require.NoError(t, err)

	// The table is registered with the engine under the strategy name.
	assert.True(t, fixedasset.KnownStrategy(cat.Strategy))
	deduction := cat.Strategy.YearDeduction(decimal.NewFromInt(10000), 2)
	assert.True(t, deduction.Equal(decimal.NewFromInt(2500)), "year 2: %s", deduction)
}

func TestParseCategory_NegativeSchedule_Rejected(t *testing.T) {
	f := factory.NewCategoryFactory()

	_, err := f.ParseCategory(`{
		"id": "cat-bad",
		"tax_strategy": "factory_bad_schedule",
		"schedule": [50, -10]
	}`)
	assert.Error(t, err)
}

func TestToJSON_RoundTrip(t *testing.T) {
	f := factory.NewCategoryFactory()

	original, err := f.ParseCategory(factory.VehiclesJSON("cat-vehicles"))
	require.NoError(t, err)

	cj := f.ToJSON(*original)
	assert.Equal(t, "cat-vehicles", cj.ID)
	assert.Equal(t, "Motor Vehicles", cj.Name)
	assert.Equal(t, 5, cj.DefaultUsefulLifeYears)
	assert.Equal(t, 10.0, cj.ResidualPercent)
	assert.Equal(t, "writeoff_40_20_20_20", cj.TaxStrategy)

	back, err := f.FromJSON(cj)
	require.NoError(t, err)
	assert.Equal(t, original.ID, back.ID)
	assert.Equal(t, original.Strategy, back.Strategy)
}
