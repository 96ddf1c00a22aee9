/*
Package sqlite provides a SQLite-backed implementation of the register
storage interfaces.

PURPOSE:
  Implements register.Store (assets, categories, locations) using SQLite.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  categories:    Category configuration (defaults + tax strategy)
  locations:     Physical/organizational groupings
  assets:        Registered assets (unique asset numbers)
  components:    Depreciable components, one row per component
  revaluations:  Fair-value events, ordered per component

SAVE SEMANTICS:
  SaveAsset replaces the asset's component tree inside one transaction:
  either the whole new state is visible or none of it. The service layer
  builds component updates copy-on-write, so replace-on-save keeps the
  stored history consistent with what the engine was shown.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time, better crash
  recovery.

MONEY COLUMNS:
  Monetary values are stored as TEXT in decimal string form and parsed
  back through shopspring/decimal - no float round-trips.

USAGE:
  store, err := sqlite.New("./data/register.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := register.NewService(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - register/store.go: Interface definitions
  - register/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/fixedasset"
	"github.com/warp/asset-register/register"
)

// Store implements register.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ register.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// go-sqlite3 gives each pooled connection its own ":memory:" database,
	// so every query must go through a single connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		default_useful_life_years INTEGER NOT NULL DEFAULT 0,
		default_tax_rate TEXT NOT NULL DEFAULT '0',
		residual_percent TEXT NOT NULL DEFAULT '0',
		tax_strategy TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		asset_number TEXT NOT NULL UNIQUE,
		description TEXT,
		category_id TEXT NOT NULL,
		location_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_assets_category
		ON assets(category_id);
	CREATE INDEX IF NOT EXISTS idx_assets_location
		ON assets(location_id);

	CREATE TABLE IF NOT EXISTS components (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL REFERENCES assets(id) ON DELETE CASCADE,
		description TEXT,
		acquisition_date TEXT NOT NULL,
		cost TEXT NOT NULL,
		residual TEXT NOT NULL DEFAULT '0',
		useful_life_years INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		disposal_date TEXT,
		disposal_proceeds TEXT NOT NULL DEFAULT '0',
		impairment_loss TEXT NOT NULL DEFAULT '0',
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_components_asset
		ON components(asset_id);

	CREATE TABLE IF NOT EXISTS revaluations (
		component_id TEXT NOT NULL REFERENCES components(id) ON DELETE CASCADE,
		effective_at TEXT NOT NULL,
		fair_value TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (component_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_revaluations_component
		ON revaluations(component_id, effective_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ASSETS
// =============================================================================

// SaveAsset inserts or replaces the asset and its component tree atomically.
func (s *Store) SaveAsset(ctx context.Context, a fixedasset.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace-on-save: drop the previous tree, write the new one.
	if _, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, string(a.ID)); err != nil {
		return fmt.Errorf("delete previous asset: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO assets (id, asset_number, description, category_id, location_id)
		VALUES (?, ?, ?, ?, ?)`,
		string(a.ID), a.AssetNumber, a.Description, string(a.CategoryID), string(a.LocationID))
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}

	for pos, c := range a.Components {
		var disposalDate any
		if c.DisposalDate != nil {
			disposalDate = c.DisposalDate.String()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO components
				(id, asset_id, description, acquisition_date, cost, residual,
				 useful_life_years, status, disposal_date, disposal_proceeds,
				 impairment_loss, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(c.ID), string(a.ID), c.Description, c.AcquisitionDate.String(),
			c.Cost.String(), c.Residual.String(), c.UsefulLifeYears, string(c.Status),
			disposalDate, c.DisposalProceeds.String(), c.ImpairmentLoss.String(), pos)
		if err != nil {
			return fmt.Errorf("insert component %s: %w", c.ID, err)
		}

		for evPos, ev := range c.Revaluations {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO revaluations (component_id, effective_at, fair_value, position)
				VALUES (?, ?, ?, ?)`,
				string(c.ID), ev.EffectiveAt.String(), ev.FairValue.String(), evPos)
			if err != nil {
				return fmt.Errorf("insert revaluation: %w", err)
			}
		}
	}

	return tx.Commit()
}

// GetAsset returns the asset or nil if it doesn't exist.
func (s *Store) GetAsset(ctx context.Context, id fixedasset.AssetID) (*fixedasset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAssetWhere(ctx, `id = ?`, string(id))
}

// GetAssetByNumber returns the asset with the given asset number, or nil.
func (s *Store) GetAssetByNumber(ctx context.Context, number string) (*fixedasset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAssetWhere(ctx, `asset_number = ?`, number)
}

func (s *Store) getAssetWhere(ctx context.Context, where string, arg any) (*fixedasset.Asset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, asset_number, description, category_id, location_id
		FROM assets WHERE `+where, arg)

	var a fixedasset.Asset
	var id, categoryID, locationID string
	err := row.Scan(&id, &a.AssetNumber, &a.Description, &categoryID, &locationID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	a.ID = fixedasset.AssetID(id)
	a.CategoryID = fixedasset.CategoryID(categoryID)
	a.LocationID = fixedasset.LocationID(locationID)

	if err := s.loadComponents(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAssets returns all assets ordered by asset number.
func (s *Store) ListAssets(ctx context.Context) ([]fixedasset.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, asset_number, description, category_id, location_id
		FROM assets ORDER BY asset_number`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []fixedasset.Asset
	for rows.Next() {
		var a fixedasset.Asset
		var id, categoryID, locationID string
		if err := rows.Scan(&id, &a.AssetNumber, &a.Description, &categoryID, &locationID); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.ID = fixedasset.AssetID(id)
		a.CategoryID = fixedasset.CategoryID(categoryID)
		a.LocationID = fixedasset.LocationID(locationID)
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range assets {
		if err := s.loadComponents(ctx, &assets[i]); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

func (s *Store) loadComponents(ctx context.Context, a *fixedasset.Asset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, acquisition_date, cost, residual,
		       useful_life_years, status, disposal_date, disposal_proceeds,
		       impairment_loss
		FROM components WHERE asset_id = ? ORDER BY position`, string(a.ID))
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c fixedasset.AssetComponent
		var id, acquisition, cost, residual, status, proceeds, impairment string
		var disposal sql.NullString
		err := rows.Scan(&id, &c.Description, &acquisition, &cost, &residual,
			&c.UsefulLifeYears, &status, &disposal, &proceeds, &impairment)
		if err != nil {
			return fmt.Errorf("scan component: %w", err)
		}

		c.ID = fixedasset.ComponentID(id)
		c.Status = fixedasset.ComponentStatus(status)
		if c.AcquisitionDate, err = fixedasset.ParseDate(acquisition); err != nil {
			return fmt.Errorf("component %s acquisition date: %w", id, err)
		}
		if c.Cost, err = decimal.NewFromString(cost); err != nil {
			return fmt.Errorf("component %s cost: %w", id, err)
		}
		if c.Residual, err = decimal.NewFromString(residual); err != nil {
			return fmt.Errorf("component %s residual: %w", id, err)
		}
		if c.DisposalProceeds, err = decimal.NewFromString(proceeds); err != nil {
			return fmt.Errorf("component %s proceeds: %w", id, err)
		}
		if c.ImpairmentLoss, err = decimal.NewFromString(impairment); err != nil {
			return fmt.Errorf("component %s impairment: %w", id, err)
		}
		if disposal.Valid {
			d, err := fixedasset.ParseDate(disposal.String)
			if err != nil {
				return fmt.Errorf("component %s disposal date: %w", id, err)
			}
			c.DisposalDate = &d
		}

		a.Components = append(a.Components, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	// Load revaluations only after the component rows are fully consumed:
	// with a single pooled connection, a nested query would deadlock.
	rows.Close()

	for i := range a.Components {
		if err := s.loadRevaluations(ctx, &a.Components[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadRevaluations(ctx context.Context, c *fixedasset.AssetComponent) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT effective_at, fair_value
		FROM revaluations WHERE component_id = ? ORDER BY position`, string(c.ID))
	if err != nil {
		return fmt.Errorf("load revaluations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev fixedasset.RevaluationEvent
		var effective, fair string
		if err := rows.Scan(&effective, &fair); err != nil {
			return fmt.Errorf("scan revaluation: %w", err)
		}
		if ev.EffectiveAt, err = fixedasset.ParseDate(effective); err != nil {
			return fmt.Errorf("revaluation date: %w", err)
		}
		if ev.FairValue, err = decimal.NewFromString(fair); err != nil {
			return fmt.Errorf("revaluation fair value: %w", err)
		}
		c.Revaluations = append(c.Revaluations, ev)
	}
	return rows.Err()
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (s *Store) SaveCategory(ctx context.Context, c fixedasset.AssetCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories
			(id, name, default_useful_life_years, default_tax_rate, residual_percent, tax_strategy)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			default_useful_life_years = excluded.default_useful_life_years,
			default_tax_rate = excluded.default_tax_rate,
			residual_percent = excluded.residual_percent,
			tax_strategy = excluded.tax_strategy`,
		string(c.ID), c.Name, c.DefaultUsefulLifeYears,
		c.DefaultTaxRate.String(), c.ResidualPercent.String(), string(c.Strategy))
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id fixedasset.CategoryID) (*fixedasset.AssetCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, default_useful_life_years, default_tax_rate, residual_percent, tax_strategy
		FROM categories WHERE id = ?`, string(id))

	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]fixedasset.AssetCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, default_useful_life_years, default_tax_rate, residual_percent, tax_strategy
		FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []fixedasset.AssetCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*fixedasset.AssetCategory, error) {
	var c fixedasset.AssetCategory
	var id, rate, residual, strategy string
	err := row.Scan(&id, &c.Name, &c.DefaultUsefulLifeYears, &rate, &residual, &strategy)
	if err != nil {
		return nil, err
	}
	c.ID = fixedasset.CategoryID(id)
	c.Strategy = fixedasset.TaxStrategy(strategy)
	if c.DefaultTaxRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("category %s tax rate: %w", id, err)
	}
	if c.ResidualPercent, err = decimal.NewFromString(residual); err != nil {
		return nil, fmt.Errorf("category %s residual percent: %w", id, err)
	}
	return &c, nil
}

// =============================================================================
// LOCATIONS
// =============================================================================

func (s *Store) SaveLocation(ctx context.Context, l fixedasset.AssetLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		string(l.ID), l.Name)
	if err != nil {
		return fmt.Errorf("save location: %w", err)
	}
	return nil
}

func (s *Store) GetLocation(ctx context.Context, id fixedasset.LocationID) (*fixedasset.AssetLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM locations WHERE id = ?`, string(id))
	var l fixedasset.AssetLocation
	var lid string
	err := row.Scan(&lid, &l.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan location: %w", err)
	}
	l.ID = fixedasset.LocationID(lid)
	return &l, nil
}

func (s *Store) ListLocations(ctx context.Context) ([]fixedasset.AssetLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []fixedasset.AssetLocation
	for rows.Next() {
		var l fixedasset.AssetLocation
		var id string
		if err := rows.Scan(&id, &l.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		l.ID = fixedasset.LocationID(id)
		out = append(out, l)
	}
	return out, rows.Err()
}
