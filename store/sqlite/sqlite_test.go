package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/asset-register/fixedasset"
	"github.com/warp/asset-register/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func disposedMachine() fixedasset.Asset {
	disposal := fixedasset.NewDate(2024, time.March, 10)
	return fixedasset.Asset{
		ID:          "asset-1",
		AssetNumber: "FA-0001",
		Description: "CNC machine",
		CategoryID:  "cat-machinery",
		LocationID:  "loc-plant",
		Components: []fixedasset.AssetComponent{
			{
				ID:              "comp-1",
				Description:     "Main unit",
				AcquisitionDate: fixedasset.NewDate(2023, time.January, 15),
				Cost:            decimal.NewFromInt(55000),
				Residual:        decimal.NewFromInt(5000),
				UsefulLifeYears: 10,
				Status:          fixedasset.StatusActive,
				Revaluations: []fixedasset.RevaluationEvent{
					{EffectiveAt: fixedasset.NewDate(2023, time.June, 1), FairValue: decimal.NewFromInt(60000)},
					{EffectiveAt: fixedasset.NewDate(2023, time.September, 1), FairValue: decimal.NewFromInt(58000)},
				},
				ImpairmentLoss: decimal.NewFromInt(2000),
			},
			{
				ID:               "comp-2",
				Description:      "Conveyor",
				AcquisitionDate:  fixedasset.NewDate(2023, time.February, 1),
				Cost:             decimal.NewFromInt(12000),
				UsefulLifeYears:  5,
				Status:           fixedasset.StatusDisposed,
				DisposalDate:     &disposal,
				DisposalProceeds: decimal.NewFromInt(4000),
			},
		},
	}
}

func TestSaveAsset_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	original := disposedMachine()

	require.NoError(t, store.SaveAsset(ctx, original))

	loaded, err := store.GetAsset(ctx, original.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.AssetNumber, loaded.AssetNumber)
	assert.Equal(t, original.CategoryID, loaded.CategoryID)
	require.Len(t, loaded.Components, 2)

	main := loaded.Components[0]
	assert.Equal(t, fixedasset.ComponentID("comp-1"), main.ID)
	assert.True(t, main.Cost.Equal(decimal.NewFromInt(55000)))
	assert.True(t, main.Residual.Equal(decimal.NewFromInt(5000)))
	assert.True(t, main.ImpairmentLoss.Equal(decimal.NewFromInt(2000)))
	require.Len(t, main.Revaluations, 2)
	assert.True(t, main.Revaluations[0].EffectiveAt.Equal(fixedasset.NewDate(2023, time.June, 1)))
	assert.True(t, main.Revaluations[1].FairValue.Equal(decimal.NewFromInt(58000)))

	conveyor := loaded.Components[1]
	assert.Equal(t, fixedasset.StatusDisposed, conveyor.Status)
	require.NotNil(t, conveyor.DisposalDate)
	assert.True(t, conveyor.DisposalDate.Equal(fixedasset.NewDate(2024, time.March, 10)))
	assert.True(t, conveyor.DisposalProceeds.Equal(decimal.NewFromInt(4000)))
}

func TestSaveAsset_ReplacesComponentTree(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	asset := disposedMachine()
	require.NoError(t, store.SaveAsset(ctx, asset))

	// Save again with only one component and no revaluations.
	asset.Components = []fixedasset.AssetComponent{{
		ID:              "comp-3",
		Description:     "Replacement unit",
		AcquisitionDate: fixedasset.NewDate(2024, time.April, 1),
		Cost:            decimal.NewFromInt(20000),
		UsefulLifeYears: 8,
		Status:          fixedasset.StatusActive,
	}}
	require.NoError(t, store.SaveAsset(ctx, asset))

	loaded, err := store.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Components, 1)
	assert.Equal(t, fixedasset.ComponentID("comp-3"), loaded.Components[0].ID)
	assert.Empty(t, loaded.Components[0].Revaluations)
}

func TestGetAsset_Missing_ReturnsNil(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.GetAsset(context.Background(), "no-such-asset")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestGetAssetByNumber(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveAsset(ctx, disposedMachine()))

	loaded, err := store.GetAssetByNumber(ctx, "FA-0001")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, fixedasset.AssetID("asset-1"), loaded.ID)

	missing, err := store.GetAssetByNumber(ctx, "FA-9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListAssets_OrderedByNumber(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	second := disposedMachine()
	second.ID = "asset-2"
	second.AssetNumber = "FA-0002"
	second.Components = nil
	require.NoError(t, store.SaveAsset(ctx, second))
	require.NoError(t, store.SaveAsset(ctx, disposedMachine()))

	assets, err := store.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "FA-0001", assets[0].AssetNumber)
	assert.Equal(t, "FA-0002", assets[1].AssetNumber)
}

func TestCategory_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat := fixedasset.AssetCategory{
		ID:                     "cat-vehicles",
		Name:                   "Motor Vehicles",
		DefaultUsefulLifeYears: 5,
		DefaultTaxRate:         decimal.NewFromInt(20),
		ResidualPercent:        decimal.NewFromInt(10),
		Strategy:               fixedasset.StrategyWriteoff40x20,
	}
	require.NoError(t, store.SaveCategory(ctx, cat))

	loaded, err := store.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cat.Name, loaded.Name)
	assert.Equal(t, 5, loaded.DefaultUsefulLifeYears)
	assert.True(t, loaded.ResidualPercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, fixedasset.StrategyWriteoff40x20, loaded.Strategy)

	// Upsert replaces.
	cat.Name = "Vehicles"
	require.NoError(t, store.SaveCategory(ctx, cat))
	loaded, err = store.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vehicles", loaded.Name)

	list, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLocation_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	loc := fixedasset.AssetLocation{ID: "loc-plant", Name: "Main Plant"}
	require.NoError(t, store.SaveLocation(ctx, loc))

	loaded, err := store.GetLocation(ctx, loc.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Main Plant", loaded.Name)

	missing, err := store.GetLocation(ctx, "loc-missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
