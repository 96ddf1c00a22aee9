/*
Package register implements the asset-register service on top of the
fixedasset engine.

PURPOSE:
  Owns asset lifecycle (registration, revaluation, impairment, disposal)
  and report generation. The engine's pure functions require immutable
  inputs; this layer mirrors that with copy-on-write component updates -
  every lifecycle operation builds a new component value and persists the
  whole asset atomically, never mutating records in place.

REPORTS:
  DepreciationReport resolves each asset's category and runs the period
  movement calculator. An asset whose category cannot be resolved yields
  an all-zero row tagged with its ID: reports render with the row visibly
  unresolved instead of failing the batch.

SEE ALSO:
  - store.go: Persistence interfaces this service depends on
  - fixedasset/movement.go: The calculation engine driven here
*/
package register

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/fixedasset"
)

// Service coordinates stores and the calculation engine.
type Service struct {
	Store Store
	Calc  fixedasset.Calculator
}

// NewService creates a service on the default June 30 fiscal year-end.
func NewService(store Store) *Service {
	return &Service{Store: store, Calc: fixedasset.NewCalculator()}
}

// NewServiceWithFiscal creates a service with a custom fiscal year-end.
func NewServiceWithFiscal(store Store, fiscal fixedasset.FiscalCalendar) *Service {
	return &Service{Store: store, Calc: fixedasset.Calculator{Fiscal: fiscal}}
}

// =============================================================================
// REGISTRATION
// =============================================================================

// ComponentInput describes one depreciable component at registration time.
// UsefulLifeYears and Residual may be left zero; the category defaults
// apply at calculation time.
type ComponentInput struct {
	Description     string
	AcquisitionDate fixedasset.Date
	Cost            decimal.Decimal
	Residual        decimal.Decimal
	UsefulLifeYears int
}

// RegisterAssetInput describes a new asset.
type RegisterAssetInput struct {
	AssetNumber string
	Description string
	CategoryID  fixedasset.CategoryID
	LocationID  fixedasset.LocationID
	Components  []ComponentInput
}

// RegisterAsset creates an asset with generated IDs. Asset numbers are
// unique across the register; the category must exist.
func (s *Service) RegisterAsset(ctx context.Context, input RegisterAssetInput) (*fixedasset.Asset, error) {
	existing, err := s.Store.GetAssetByNumber(ctx, input.AssetNumber)
	if err != nil {
		return nil, fmt.Errorf("checking asset number: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", fixedasset.ErrDuplicateAssetNumber, input.AssetNumber)
	}

	cat, err := s.Store.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("resolving category: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: %s", fixedasset.ErrCategoryNotFound, input.CategoryID)
	}

	asset := fixedasset.Asset{
		ID:          fixedasset.AssetID(uuid.NewString()),
		AssetNumber: input.AssetNumber,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	for _, ci := range input.Components {
		asset.Components = append(asset.Components, fixedasset.AssetComponent{
			ID:              fixedasset.ComponentID(uuid.NewString()),
			Description:     ci.Description,
			AcquisitionDate: ci.AcquisitionDate,
			Cost:            ci.Cost,
			Residual:        ci.Residual,
			UsefulLifeYears: ci.UsefulLifeYears,
			Status:          fixedasset.StatusActive,
		})
	}

	if err := s.Store.SaveAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("saving asset: %w", err)
	}
	return &asset, nil
}

// AddComponent appends a new component to an existing asset.
func (s *Service) AddComponent(ctx context.Context, assetID fixedasset.AssetID, input ComponentInput) (*fixedasset.Asset, error) {
	asset, err := s.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	asset.Components = append(asset.Components, fixedasset.AssetComponent{
		ID:              fixedasset.ComponentID(uuid.NewString()),
		Description:     input.Description,
		AcquisitionDate: input.AcquisitionDate,
		Cost:            input.Cost,
		Residual:        input.Residual,
		UsefulLifeYears: input.UsefulLifeYears,
		Status:          fixedasset.StatusActive,
	})

	if err := s.Store.SaveAsset(ctx, *asset); err != nil {
		return nil, fmt.Errorf("saving asset: %w", err)
	}
	return asset, nil
}

// =============================================================================
// LIFECYCLE - Copy-on-write component updates
// =============================================================================

// Revalue records a fair-value assessment of a component.
func (s *Service) Revalue(ctx context.Context, assetID fixedasset.AssetID, componentID fixedasset.ComponentID, at fixedasset.Date, fairValue decimal.Decimal) (*fixedasset.Asset, error) {
	return s.updateComponent(ctx, assetID, componentID, func(c fixedasset.AssetComponent) (fixedasset.AssetComponent, error) {
		if c.Status.OffBooks() {
			return c, fixedasset.ErrComponentDisposed
		}
		return c.Revalued(at, fairValue), nil
	})
}

// Impair adds to a component's cumulative impairment loss.
func (s *Service) Impair(ctx context.Context, assetID fixedasset.AssetID, componentID fixedasset.ComponentID, loss decimal.Decimal) (*fixedasset.Asset, error) {
	return s.updateComponent(ctx, assetID, componentID, func(c fixedasset.AssetComponent) (fixedasset.AssetComponent, error) {
		if c.Status.OffBooks() {
			return c, fixedasset.ErrComponentDisposed
		}
		return c.Impaired(loss), nil
	})
}

// Dispose sells a component. Disposal is terminal.
func (s *Service) Dispose(ctx context.Context, assetID fixedasset.AssetID, componentID fixedasset.ComponentID, at fixedasset.Date, proceeds decimal.Decimal) (*fixedasset.Asset, error) {
	return s.updateComponent(ctx, assetID, componentID, func(c fixedasset.AssetComponent) (fixedasset.AssetComponent, error) {
		if c.Status.OffBooks() {
			return c, fixedasset.ErrComponentDisposed
		}
		return c.Disposed(at, proceeds), nil
	})
}

// Scrap writes a component off without proceeds. Terminal, like disposal.
func (s *Service) Scrap(ctx context.Context, assetID fixedasset.AssetID, componentID fixedasset.ComponentID, at fixedasset.Date) (*fixedasset.Asset, error) {
	return s.updateComponent(ctx, assetID, componentID, func(c fixedasset.AssetComponent) (fixedasset.AssetComponent, error) {
		if c.Status.OffBooks() {
			return c, fixedasset.ErrComponentDisposed
		}
		return c.Scrapped(at), nil
	})
}

func (s *Service) updateComponent(ctx context.Context, assetID fixedasset.AssetID, componentID fixedasset.ComponentID, update func(fixedasset.AssetComponent) (fixedasset.AssetComponent, error)) (*fixedasset.Asset, error) {
	asset, err := s.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	found := false
	for i, c := range asset.Components {
		if c.ID != componentID {
			continue
		}
		updated, err := update(c)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", componentID, err)
		}
		asset.Components[i] = updated
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", fixedasset.ErrComponentNotFound, componentID)
	}

	if err := s.Store.SaveAsset(ctx, *asset); err != nil {
		return nil, fmt.Errorf("saving asset: %w", err)
	}
	return asset, nil
}

func (s *Service) getAsset(ctx context.Context, id fixedasset.AssetID) (*fixedasset.Asset, error) {
	asset, err := s.Store.GetAsset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading asset: %w", err)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: %s", fixedasset.ErrAssetNotFound, id)
	}
	return asset, nil
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SaveCategory validates and persists a category. The strategy must be
// the flat strategy or have a registered schedule table.
func (s *Service) SaveCategory(ctx context.Context, c fixedasset.AssetCategory) error {
	if !fixedasset.KnownStrategy(c.Strategy) {
		return fmt.Errorf("%w: %s", fixedasset.ErrUnknownStrategy, c.Strategy)
	}
	if err := s.Store.SaveCategory(ctx, c); err != nil {
		return fmt.Errorf("saving category: %w", err)
	}
	return nil
}

// =============================================================================
// REPORTS
// =============================================================================

// DepreciationReport computes one movement row per asset for the period.
// Rows keep the listing order of the assets. Assets with unresolved
// categories produce all-zero rows, never errors.
func (s *Service) DepreciationReport(ctx context.Context, p fixedasset.Period) ([]fixedasset.DepreciationCalculation, error) {
	if p.End.Before(p.Start) {
		return nil, fmt.Errorf("%w: %s", fixedasset.ErrInvalidPeriod, p)
	}

	assets, err := s.Store.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	categories, err := s.categoriesByID(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]fixedasset.DepreciationCalculation, 0, len(assets))
	for _, a := range assets {
		var cat *fixedasset.AssetCategory
		if c, ok := categories[a.CategoryID]; ok {
			cat = &c
		}
		results = append(results, s.Calc.AssetMovement(a, cat, p))
	}
	return results, nil
}

// ConsolidatedReport sums the per-asset rows into one.
func (s *Service) ConsolidatedReport(ctx context.Context, p fixedasset.Period) (fixedasset.DepreciationCalculation, error) {
	rows, err := s.DepreciationReport(ctx, p)
	if err != nil {
		return fixedasset.DepreciationCalculation{}, err
	}
	return fixedasset.Consolidate(rows), nil
}

func (s *Service) categoriesByID(ctx context.Context) (map[fixedasset.CategoryID]fixedasset.AssetCategory, error) {
	list, err := s.Store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	byID := make(map[fixedasset.CategoryID]fixedasset.AssetCategory, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}
	return byID, nil
}
