/*
handlers.go - HTTP API handlers for the asset register

PURPOSE:
  Exposes the asset register via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the register service.

ENDPOINTS:
  Assets:
    GET    /api/assets                 List all assets
    POST   /api/assets                 Register an asset
    GET    /api/assets/{id}            Get asset details
    POST   /api/assets/{id}/components Add a component

  Component lifecycle:
    POST   /api/assets/{id}/components/{cid}/revalue
    POST   /api/assets/{id}/components/{cid}/impair
    POST   /api/assets/{id}/components/{cid}/dispose
    POST   /api/assets/{id}/components/{cid}/scrap

  Configuration:
    GET    /api/categories             List categories
    POST   /api/categories             Create category from JSON
    GET    /api/locations              List locations
    POST   /api/locations              Create location

  Reports:
    GET    /api/reports/depreciation?start=YYYY-MM-DD&end=YYYY-MM-DD
    GET    /api/reports/consolidated?start=YYYY-MM-DD&end=YYYY-MM-DD

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, invalid period
  - 404: Asset/component/category not found
  - 409: Conflict (duplicate asset number, disposed component)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - register/service.go: The service these handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/factory"
	"github.com/warp/asset-register/fixedasset"
	"github.com/warp/asset-register/register"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service         *register.Service
	CategoryFactory *factory.CategoryFactory
}

// NewHandler creates a new handler around the register service.
func NewHandler(svc *register.Service) *Handler {
	return &Handler{
		Service:         svc,
		CategoryFactory: factory.NewCategoryFactory(),
	}
}

// =============================================================================
// ASSET HANDLERS
// =============================================================================

// ListAssets returns all assets ordered by asset number.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.Store.ListAssets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	dtos := make([]AssetDTO, len(assets))
	for i, a := range assets {
		dtos[i] = toAssetDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAsset returns a single asset with its components.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id := fixedasset.AssetID(chi.URLParam(r, "id"))

	asset, err := h.Service.Store.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get asset", err)
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// CreateAsset registers a new asset with its components.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.AssetNumber == "" {
		writeError(w, http.StatusBadRequest, "asset_number is required", nil)
		return
	}

	input := register.RegisterAssetInput{
		AssetNumber: req.AssetNumber,
		Description: req.Description,
		CategoryID:  fixedasset.CategoryID(req.CategoryID),
		LocationID:  fixedasset.LocationID(req.LocationID),
	}
	for _, cr := range req.Components {
		ci, err := toComponentInput(cr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid component", err)
			return
		}
		input.Components = append(input.Components, ci)
	}

	asset, err := h.Service.RegisterAsset(r.Context(), input)
	if err != nil {
		writeServiceError(w, "Failed to register asset", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssetDTO(*asset))
}

// AddComponent appends a component to an existing asset.
func (h *Handler) AddComponent(w http.ResponseWriter, r *http.Request) {
	assetID := fixedasset.AssetID(chi.URLParam(r, "id"))

	var req CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ci, err := toComponentInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid component", err)
		return
	}

	asset, err := h.Service.AddComponent(r.Context(), assetID, ci)
	if err != nil {
		writeServiceError(w, "Failed to add component", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssetDTO(*asset))
}

func toComponentInput(cr CreateComponentRequest) (register.ComponentInput, error) {
	acquired, err := fixedasset.ParseDate(cr.AcquisitionDate)
	if err != nil {
		return register.ComponentInput{}, err
	}
	return register.ComponentInput{
		Description:     cr.Description,
		AcquisitionDate: acquired,
		Cost:            decimal.NewFromFloat(cr.Cost),
		Residual:        decimal.NewFromFloat(cr.Residual),
		UsefulLifeYears: cr.UsefulLifeYears,
	}, nil
}

// =============================================================================
// COMPONENT LIFECYCLE HANDLERS
// =============================================================================

// Revalue records a fair-value assessment of a component.
// POST /api/assets/{id}/components/{cid}/revalue
func (h *Handler) Revalue(w http.ResponseWriter, r *http.Request) {
	assetID := fixedasset.AssetID(chi.URLParam(r, "id"))
	componentID := fixedasset.ComponentID(chi.URLParam(r, "cid"))

	var req RevalueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	at, err := fixedasset.ParseDate(req.EffectiveAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_at (use YYYY-MM-DD)", err)
		return
	}

	asset, err := h.Service.Revalue(r.Context(), assetID, componentID, at, decimal.NewFromFloat(req.FairValue))
	if err != nil {
		writeServiceError(w, "Failed to revalue component", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// Impair adds to a component's cumulative impairment loss.
// POST /api/assets/{id}/components/{cid}/impair
func (h *Handler) Impair(w http.ResponseWriter, r *http.Request) {
	assetID := fixedasset.AssetID(chi.URLParam(r, "id"))
	componentID := fixedasset.ComponentID(chi.URLParam(r, "cid"))

	var req ImpairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	asset, err := h.Service.Impair(r.Context(), assetID, componentID, decimal.NewFromFloat(req.Loss))
	if err != nil {
		writeServiceError(w, "Failed to impair component", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// Dispose sells a component. Disposal is terminal.
// POST /api/assets/{id}/components/{cid}/dispose
func (h *Handler) Dispose(w http.ResponseWriter, r *http.Request) {
	assetID := fixedasset.AssetID(chi.URLParam(r, "id"))
	componentID := fixedasset.ComponentID(chi.URLParam(r, "cid"))

	var req DisposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	at, err := fixedasset.ParseDate(req.DisposalDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid disposal_date (use YYYY-MM-DD)", err)
		return
	}

	asset, err := h.Service.Dispose(r.Context(), assetID, componentID, at, decimal.NewFromFloat(req.Proceeds))
	if err != nil {
		writeServiceError(w, "Failed to dispose component", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// Scrap writes a component off without proceeds.
// POST /api/assets/{id}/components/{cid}/scrap
func (h *Handler) Scrap(w http.ResponseWriter, r *http.Request) {
	assetID := fixedasset.AssetID(chi.URLParam(r, "id"))
	componentID := fixedasset.ComponentID(chi.URLParam(r, "cid"))

	var req ScrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	at, err := fixedasset.ParseDate(req.ScrapDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scrap_date (use YYYY-MM-DD)", err)
		return
	}

	asset, err := h.Service.Scrap(r.Context(), assetID, componentID, at)
	if err != nil {
		writeServiceError(w, "Failed to scrap component", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// ListCategories returns all categories in JSON config form.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.Store.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = CategoryDTO{Config: h.CategoryFactory.ToJSON(c)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCategory creates a category from its JSON definition.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cj factory.CategoryJSON
	if err := json.NewDecoder(r.Body).Decode(&cj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cat, err := h.CategoryFactory.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category definition", err)
		return
	}
	if err := h.Service.SaveCategory(r.Context(), *cat); err != nil {
		writeServiceError(w, "Failed to save category", err)
		return
	}
	writeJSON(w, http.StatusCreated, CategoryDTO{Config: h.CategoryFactory.ToJSON(*cat)})
}

// ListLocations returns all locations.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.Store.ListLocations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list locations", err)
		return
	}

	dtos := make([]LocationDTO, len(locations))
	for i, l := range locations {
		dtos[i] = LocationDTO{ID: string(l.ID), Name: l.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLocation creates a location.
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	loc := fixedasset.AssetLocation{ID: fixedasset.LocationID(req.ID), Name: req.Name}
	if err := h.Service.Store.SaveLocation(r.Context(), loc); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save location", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// DepreciationReport returns the per-asset movement schedule for a period.
// GET /api/reports/depreciation?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) DepreciationReport(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use start/end as YYYY-MM-DD)", err)
		return
	}

	rows, err := h.Service.DepreciationReport(r.Context(), period)
	if err != nil {
		writeServiceError(w, "Failed to compute report", err)
		return
	}

	dtos := make([]MovementDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toMovementDTO(row)
	}
	total := toMovementDTO(fixedasset.Consolidate(rows))
	total.AssetID = ""

	writeJSON(w, http.StatusOK, ReportDTO{
		Start: period.Start.String(),
		End:   period.End.String(),
		Rows:  dtos,
		Total: total,
	})
}

// ConsolidatedReport returns the single summed movement row for a period.
// GET /api/reports/consolidated?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) ConsolidatedReport(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use start/end as YYYY-MM-DD)", err)
		return
	}

	total, err := h.Service.ConsolidatedReport(r.Context(), period)
	if err != nil {
		writeServiceError(w, "Failed to compute report", err)
		return
	}

	dto := toMovementDTO(total)
	dto.AssetID = ""
	writeJSON(w, http.StatusOK, ReportDTO{
		Start: period.Start.String(),
		End:   period.End.String(),
		Total: dto,
	})
}

func parsePeriod(r *http.Request) (fixedasset.Period, error) {
	start, err := fixedasset.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		return fixedasset.Period{}, err
	}
	end, err := fixedasset.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		return fixedasset.Period{}, err
	}
	return fixedasset.Period{Start: start, End: end}, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps register/engine sentinel errors onto HTTP status
// codes.
func writeServiceError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fixedasset.ErrAssetNotFound),
		errors.Is(err, fixedasset.ErrComponentNotFound),
		errors.Is(err, fixedasset.ErrCategoryNotFound),
		errors.Is(err, fixedasset.ErrLocationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fixedasset.ErrDuplicateAssetNumber),
		errors.Is(err, fixedasset.ErrComponentDisposed):
		status = http.StatusConflict
	case errors.Is(err, fixedasset.ErrUnknownStrategy),
		errors.Is(err, fixedasset.ErrInvalidPeriod):
		status = http.StatusBadRequest
	}
	writeError(w, status, message, err)
}
