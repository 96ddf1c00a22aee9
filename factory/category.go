/*
Package factory provides JSON to Go category conversion.

PURPOSE:
  Converts JSON category definitions into fixedasset.AssetCategory values
  and, when a definition carries its own schedule table, registers that
  table with the engine. This enables category configuration without code
  changes - finance can define categories in JSON, and the factory creates
  the proper Go structs.

WHY JSON?
  - Non-developers can modify category defaults
  - Easy integration with admin UI
  - Version control for category definitions
  - Database storage of category configs

JSON SCHEMA:
  {
    "id": "cat-vehicles",
    "name": "Motor Vehicles",
    "default_useful_life_years": 5,
    "default_tax_rate": 20,
    "residual_percent": 10,
    "tax_strategy": "writeoff_40_20_20_20"
  }

  A custom write-off table can accompany a new strategy name; the factory
  registers it so the engine can resolve the strategy:

  {
    "id": "cat-tooling",
    "name": "Tooling",
    "tax_strategy": "writeoff_25_25_25_25",
    "schedule": [25, 25, 25, 25]
  }

KEY FEATURES:
  - Validates JSON structure
  - Registers custom schedule tables
  - Rejects unknown strategies without a table
  - Round-trips categories back to JSON for API responses

USAGE:
  f := factory.NewCategoryFactory()

  // From JSON string
  cat, err := f.ParseCategory(jsonString)

  // From preset (recommended for seeding)
  cat, err := f.ParseCategory(factory.MachineryJSON("cat-machinery"))

SEE ALSO:
  - fixedasset/types.go: AssetCategory type definition
  - fixedasset/schedule.go: Schedule table and strategy registry
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/fixedasset"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CategoryJSON is the JSON representation of a category.
type CategoryJSON struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	DefaultUsefulLifeYears int       `json:"default_useful_life_years,omitempty"`
	DefaultTaxRate         float64   `json:"default_tax_rate,omitempty"`   // Percent per year
	ResidualPercent        float64   `json:"residual_percent,omitempty"`   // Percent of cost
	TaxStrategy            string    `json:"tax_strategy"`
	Schedule               []float64 `json:"schedule,omitempty"` // Percent per tax year, custom strategies only
}

// =============================================================================
// CATEGORY FACTORY
// =============================================================================

// CategoryFactory converts JSON categories to Go structs.
type CategoryFactory struct{}

// NewCategoryFactory creates a new category factory.
func NewCategoryFactory() *CategoryFactory {
	return &CategoryFactory{}
}

// ParseCategory parses a JSON string into an AssetCategory.
func (f *CategoryFactory) ParseCategory(jsonStr string) (*fixedasset.AssetCategory, error) {
	var cj CategoryJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse category JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts CategoryJSON to fixedasset.AssetCategory. A definition
// carrying a schedule table registers it under its strategy name first, so
// self-contained definitions resolve regardless of load order.
func (f *CategoryFactory) FromJSON(cj CategoryJSON) (*fixedasset.AssetCategory, error) {
	if cj.ID == "" {
		return nil, fmt.Errorf("category requires an id")
	}

	strategy := fixedasset.TaxStrategy(cj.TaxStrategy)
	if strategy == "" {
		strategy = fixedasset.StrategyStandardFlat
	}

	if len(cj.Schedule) > 0 {
		table := make([]decimal.Decimal, len(cj.Schedule))
		for i, pct := range cj.Schedule {
			if pct < 0 {
				return nil, fmt.Errorf("schedule year %d: negative percentage", i+1)
			}
			table[i] = decimal.NewFromFloat(pct)
		}
		fixedasset.RegisterSchedule(strategy, table)
	}

	if !fixedasset.KnownStrategy(strategy) {
		return nil, fmt.Errorf("%w: %s", fixedasset.ErrUnknownStrategy, strategy)
	}

	return &fixedasset.AssetCategory{
		ID:                     fixedasset.CategoryID(cj.ID),
		Name:                   cj.Name,
		DefaultUsefulLifeYears: cj.DefaultUsefulLifeYears,
		DefaultTaxRate:         decimal.NewFromFloat(cj.DefaultTaxRate),
		ResidualPercent:        decimal.NewFromFloat(cj.ResidualPercent),
		Strategy:               strategy,
	}, nil
}

// ToJSON converts an AssetCategory to CategoryJSON.
func (f *CategoryFactory) ToJSON(c fixedasset.AssetCategory) CategoryJSON {
	rate, _ := c.DefaultTaxRate.Float64()
	residual, _ := c.ResidualPercent.Float64()
	return CategoryJSON{
		ID:                     string(c.ID),
		Name:                   c.Name,
		DefaultUsefulLifeYears: c.DefaultUsefulLifeYears,
		DefaultTaxRate:         rate,
		ResidualPercent:        residual,
		TaxStrategy:            string(c.Strategy),
	}
}

// =============================================================================
// PRESET CATEGORIES
// =============================================================================

// MachineryJSON returns a plant & machinery category: 10-year life,
// flat 20%/year tax depreciation.
func MachineryJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"name": "Plant & Machinery",
		"default_useful_life_years": 10,
		"default_tax_rate": 20,
		"tax_strategy": "standard_flat"
	}`, id)
}

// VehiclesJSON returns a motor vehicles category: 5-year life, 10%%
// residual, accelerated 40/20/20/20 write-off.
func VehiclesJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"name": "Motor Vehicles",
		"default_useful_life_years": 5,
		"residual_percent": 10,
		"tax_strategy": "writeoff_40_20_20_20"
	}`, id)
}

// ComputersJSON returns an IT equipment category: 3-year life,
// 50/30/20 write-off.
func ComputersJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"name": "Computer Equipment",
		"default_useful_life_years": 3,
		"tax_strategy": "writeoff_50_30_20"
	}`, id)
}

// BuildingsJSON returns a buildings category: 40-year life, 5%%/year over
// 20 years on the tax basis.
func BuildingsJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"name": "Buildings",
		"default_useful_life_years": 40,
		"tax_strategy": "five_percent_20_years"
	}`, id)
}

// SmallItemsJSON returns a small-items category written off in full in
// the year of acquisition.
func SmallItemsJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"name": "Small Items",
		"default_useful_life_years": 1,
		"tax_strategy": "full_writeoff_100"
	}`, id)
}
