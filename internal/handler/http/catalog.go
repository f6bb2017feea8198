package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/reviews-service/internal/service"
	"github.com/utafrali/reviews-service/pkg/httputil"
)

// CatalogHandler handles HTTP requests for the attribute and characteristic
// catalogs.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListAttributes handles GET /api/v1/attributes.
func (h *CatalogHandler) ListAttributes(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.AllAttributes(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// GetAttribute handles GET /api/v1/attributes/{attributeID}.
func (h *CatalogHandler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "attributeID"))
	if !ok {
		return
	}

	attr, err := h.service.SingleAttribute(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: attr})
}

// ListProductAttributes handles GET /api/v1/products/{productID}/attributes.
func (h *CatalogHandler) ListProductAttributes(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.AttributesForProduct(r.Context(), productID, q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// ListCharacteristics handles GET /api/v1/characteristics.
func (h *CatalogHandler) ListCharacteristics(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.AllCharacteristics(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// GetCharacteristic handles GET /api/v1/characteristics/{charstcsID}.
func (h *CatalogHandler) GetCharacteristic(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "charstcsID"))
	if !ok {
		return
	}

	char, err := h.service.SingleCharacteristic(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: char})
}

// ListAuthorCharacteristics handles
// GET /api/v1/authors/{authorID}/characteristics.
func (h *CatalogHandler) ListAuthorCharacteristics(w http.ResponseWriter, r *http.Request) {
	authorID, ok := httputil.ParseID(w, chi.URLParam(r, "authorID"))
	if !ok {
		return
	}

	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.CharacteristicsForAuthor(r.Context(), authorID, q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// parseIDList parses a comma-separated id list query parameter.
func parseIDList(w http.ResponseWriter, raw string) ([]int64, bool) {
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "INVALID_PARAMETER",
					Message: "invalid id list entry: " + part,
				},
			})
			return nil, false
		}
		ids = append(ids, id)
	}

	return ids, true
}
