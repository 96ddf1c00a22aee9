/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY FIELDS:
  The engine works in decimal throughout; the API converts to float64 at
  the boundary for JSON ergonomics. Report consumers needing exact cents
  should use the consolidated totals, which are summed in decimal before
  conversion.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/category.go: CategoryJSON type
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/factory"
	"github.com/warp/asset-register/fixedasset"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AssetDTO represents an asset in API responses.
type AssetDTO struct {
	ID          string         `json:"id"`
	AssetNumber string         `json:"asset_number"`
	Description string         `json:"description,omitempty"`
	CategoryID  string         `json:"category_id"`
	LocationID  string         `json:"location_id,omitempty"`
	Components  []ComponentDTO `json:"components"`
}

// ComponentDTO represents a depreciable component.
type ComponentDTO struct {
	ID               string           `json:"id"`
	Description      string           `json:"description,omitempty"`
	AcquisitionDate  string           `json:"acquisition_date"`
	Cost             float64          `json:"cost"`
	Residual         float64          `json:"residual,omitempty"`
	UsefulLifeYears  int              `json:"useful_life_years,omitempty"`
	Status           string           `json:"status"`
	DisposalDate     *string          `json:"disposal_date,omitempty"`
	DisposalProceeds float64          `json:"disposal_proceeds,omitempty"`
	ImpairmentLoss   float64          `json:"impairment_loss,omitempty"`
	Revaluations     []RevaluationDTO `json:"revaluations,omitempty"`
}

// RevaluationDTO represents one fair-value event.
type RevaluationDTO struct {
	EffectiveAt string  `json:"effective_at"`
	FairValue   float64 `json:"fair_value"`
}

// CreateAssetRequest is the request to register an asset.
type CreateAssetRequest struct {
	AssetNumber string                   `json:"asset_number"`
	Description string                   `json:"description,omitempty"`
	CategoryID  string                   `json:"category_id"`
	LocationID  string                   `json:"location_id,omitempty"`
	Components  []CreateComponentRequest `json:"components"`
}

// CreateComponentRequest describes one component at registration time.
// useful_life_years and residual may be omitted; category defaults apply
// at calculation time.
type CreateComponentRequest struct {
	Description     string  `json:"description,omitempty"`
	AcquisitionDate string  `json:"acquisition_date"`
	Cost            float64 `json:"cost"`
	Residual        float64 `json:"residual,omitempty"`
	UsefulLifeYears int     `json:"useful_life_years,omitempty"`
}

// RevalueRequest records a fair-value assessment.
type RevalueRequest struct {
	EffectiveAt string  `json:"effective_at"`
	FairValue   float64 `json:"fair_value"`
}

// ImpairRequest adds to a component's cumulative impairment loss.
type ImpairRequest struct {
	Loss float64 `json:"loss"`
}

// DisposeRequest sells a component.
type DisposeRequest struct {
	DisposalDate string  `json:"disposal_date"`
	Proceeds     float64 `json:"proceeds"`
}

// ScrapRequest writes a component off without proceeds.
type ScrapRequest struct {
	ScrapDate string `json:"scrap_date"`
}

// CategoryDTO wraps the factory's JSON form for API responses.
type CategoryDTO struct {
	Config factory.CategoryJSON `json:"config"`
}

// LocationDTO represents a location.
type LocationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovementDTO is one row of the depreciation report: the full dual-basis
// movement for an asset over the reporting period.
type MovementDTO struct {
	AssetID string `json:"asset_id,omitempty"`

	// Cost roll-forward
	OpeningCost  float64 `json:"opening_cost"`
	Additions    float64 `json:"additions"`
	Disposals    float64 `json:"disposals"`
	Revaluations float64 `json:"revaluations"`
	Impairments  float64 `json:"impairments"`
	ClosingCost  float64 `json:"closing_cost"`

	// Accounting depreciation
	OpeningAccumDepr  float64 `json:"opening_accum_depr"`
	Depreciation      float64 `json:"depreciation"`
	DisposalAccumDepr float64 `json:"disposal_accum_depr"`
	ClosingAccumDepr  float64 `json:"closing_accum_depr"`
	OpeningNBV        float64 `json:"opening_nbv"`
	ClosingNBV        float64 `json:"closing_nbv"`

	// Tax basis
	OpeningTaxValue float64 `json:"opening_tax_value"`
	TaxDeduction    float64 `json:"tax_deduction"`
	DisposalTaxDepr float64 `json:"disposal_tax_depr"`
	ClosingTaxValue float64 `json:"closing_tax_value"`
	AccumTaxDepr    float64 `json:"accum_tax_depr"`
	TaxYear         int     `json:"tax_year,omitempty"`

	// Disposal outcome
	HasDisposal      bool    `json:"has_disposal,omitempty"`
	DisposalProceeds float64 `json:"disposal_proceeds,omitempty"`
	ProfitOnDisposal float64 `json:"profit_on_disposal,omitempty"`
	Recoupment       float64 `json:"recoupment,omitempty"`
}

// ReportDTO is the depreciation report response.
type ReportDTO struct {
	Start string        `json:"start"`
	End   string        `json:"end"`
	Rows  []MovementDTO `json:"rows"`
	Total MovementDTO   `json:"total"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toAssetDTO(a fixedasset.Asset) AssetDTO {
	dto := AssetDTO{
		ID:          string(a.ID),
		AssetNumber: a.AssetNumber,
		Description: a.Description,
		CategoryID:  string(a.CategoryID),
		LocationID:  string(a.LocationID),
		Components:  make([]ComponentDTO, len(a.Components)),
	}
	for i, c := range a.Components {
		dto.Components[i] = toComponentDTO(c)
	}
	return dto
}

func toComponentDTO(c fixedasset.AssetComponent) ComponentDTO {
	dto := ComponentDTO{
		ID:               string(c.ID),
		Description:      c.Description,
		AcquisitionDate:  c.AcquisitionDate.String(),
		Cost:             f64(c.Cost),
		Residual:         f64(c.Residual),
		UsefulLifeYears:  c.UsefulLifeYears,
		Status:           string(c.Status),
		DisposalProceeds: f64(c.DisposalProceeds),
		ImpairmentLoss:   f64(c.ImpairmentLoss),
	}
	if c.DisposalDate != nil {
		s := c.DisposalDate.String()
		dto.DisposalDate = &s
	}
	for _, ev := range c.Revaluations {
		dto.Revaluations = append(dto.Revaluations, RevaluationDTO{
			EffectiveAt: ev.EffectiveAt.String(),
			FairValue:   f64(ev.FairValue),
		})
	}
	return dto
}

func toMovementDTO(m fixedasset.DepreciationCalculation) MovementDTO {
	return MovementDTO{
		AssetID: string(m.AssetID),

		OpeningCost:  f64(m.OpeningCost),
		Additions:    f64(m.Additions),
		Disposals:    f64(m.Disposals),
		Revaluations: f64(m.Revaluations),
		Impairments:  f64(m.Impairments),
		ClosingCost:  f64(m.ClosingCost),

		OpeningAccumDepr:  f64(m.OpeningAccumDepr),
		Depreciation:      f64(m.Depreciation),
		DisposalAccumDepr: f64(m.DisposalAccumDepr),
		ClosingAccumDepr:  f64(m.ClosingAccumDepr),
		OpeningNBV:        f64(m.OpeningNBV),
		ClosingNBV:        f64(m.ClosingNBV),

		OpeningTaxValue: f64(m.OpeningTaxValue),
		TaxDeduction:    f64(m.TaxDeduction),
		DisposalTaxDepr: f64(m.DisposalTaxDepr),
		ClosingTaxValue: f64(m.ClosingTaxValue),
		AccumTaxDepr:    f64(m.AccumTaxDepr),
		TaxYear:         m.TaxYear,

		HasDisposal:      m.HasDisposal,
		DisposalProceeds: f64(m.DisposalProceeds),
		ProfitOnDisposal: f64(m.ProfitOnDisposal),
		Recoupment:       f64(m.Recoupment),
	}
}

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
