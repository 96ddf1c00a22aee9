/*
store.go - Persistence interfaces for the asset register

PURPOSE:
  Defines the interface between the register service and the database.
  The engine in fixedasset/ never touches persistence; these interfaces
  are the collaborator contract it is fed from.

KEY INTERFACES:
  AssetStore:    Assets with their components and revaluation events
  CategoryStore: Category configuration (defaults + tax strategy)
  LocationStore: Physical/organizational groupings

SAVE SEMANTICS:
  SaveAsset persists the asset and its full component tree atomically.
  Lifecycle updates (revalue, impair, dispose) are modeled as
  copy-on-write component replacements followed by a SaveAsset, so a
  reader always sees a consistent event history.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - register/store/memory.go: In-memory for testing/dev

SEE ALSO:
  - service.go: The register service built on these interfaces
*/
package register

import (
	"context"

	"github.com/warp/asset-register/fixedasset"
)

// AssetStore persists assets with their components.
type AssetStore interface {
	// SaveAsset inserts or replaces the asset and its component tree
	// atomically.
	SaveAsset(ctx context.Context, a fixedasset.Asset) error

	// GetAsset returns the asset or nil if it doesn't exist.
	GetAsset(ctx context.Context, id fixedasset.AssetID) (*fixedasset.Asset, error)

	// GetAssetByNumber returns the asset with the given asset number, or nil.
	GetAssetByNumber(ctx context.Context, number string) (*fixedasset.Asset, error)

	// ListAssets returns all assets ordered by asset number.
	ListAssets(ctx context.Context) ([]fixedasset.Asset, error)
}

// CategoryStore persists category configuration.
type CategoryStore interface {
	SaveCategory(ctx context.Context, c fixedasset.AssetCategory) error
	GetCategory(ctx context.Context, id fixedasset.CategoryID) (*fixedasset.AssetCategory, error)
	ListCategories(ctx context.Context) ([]fixedasset.AssetCategory, error)
}

// LocationStore persists locations.
type LocationStore interface {
	SaveLocation(ctx context.Context, l fixedasset.AssetLocation) error
	GetLocation(ctx context.Context, id fixedasset.LocationID) (*fixedasset.AssetLocation, error)
	ListLocations(ctx context.Context) ([]fixedasset.AssetLocation, error)
}

// Store bundles all persistence interfaces. The SQLite and memory stores
// both satisfy it.
type Store interface {
	AssetStore
	CategoryStore
	LocationStore
}
