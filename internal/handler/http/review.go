package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/reviews-service/internal/service"
	"github.com/utafrali/reviews-service/pkg/httputil"
	"github.com/utafrali/reviews-service/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// SortReviewsRequest is the JSON request body for the sorting endpoint.
type SortReviewsRequest struct {
	Filters []service.SortFilter `json:"filters" validate:"required,min=1,dive"`
}

// parseQuery reads the shared ?type= and ?order= list options.
func parseQuery(w http.ResponseWriter, r *http.Request) (service.Query, bool) {
	projection, err := service.ParseProjection(r.URL.Query().Get("type"))
	if err != nil {
		httputil.WriteError(w, r, err, nil)
		return service.Query{}, false
	}

	order, err := service.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		httputil.WriteError(w, r, err, nil)
		return service.Query{}, false
	}

	return service.Query{Projection: projection, Order: order}, true
}

// ListReviews handles GET /api/v1/reviews. With ?scope=admin the rejected
// rows are included, matching the moderation screens.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	var (
		result *service.Result
		err    error
	)
	if r.URL.Query().Get("scope") == "admin" {
		result, err = h.service.AdminReviews(r.Context(), q)
	} else {
		result, err = h.service.AllReviews(r.Context(), q)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// ListVerifiedReviews handles GET /api/v1/reviews/verified.
func (h *ReviewHandler) ListVerifiedReviews(w http.ResponseWriter, r *http.Request) {
	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.VerifiedReviews(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// GetReview handles GET /api/v1/reviews/{reviewID}.
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "reviewID"))
	if !ok {
		return
	}

	review, err := h.service.SingleReview(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// BatchReviews handles GET /api/v1/reviews/batch?ids=1,2,3.
func (h *ReviewHandler) BatchReviews(w http.ResponseWriter, r *http.Request) {
	ids, ok := parseIDList(w, r.URL.Query().Get("ids"))
	if !ok {
		return
	}

	reviews, err := h.service.ReviewBatch(r.Context(), ids)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}

// ListProductReviews handles GET /api/v1/products/{productID}/reviews.
// ?status=approved narrows the set to approved rows only.
func (h *ReviewHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	var (
		result *service.Result
		err    error
	)
	if r.URL.Query().Get("status") == "approved" {
		result, err = h.service.ApprovedReviewsForProduct(r.Context(), productID, q)
	} else {
		result, err = h.service.ReviewsForProduct(r.Context(), productID, q)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// GetProductReviewCount handles GET /api/v1/products/{productID}/reviews/count.
func (h *ReviewHandler) GetProductReviewCount(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	count, err := h.service.ReviewCountForProduct(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]int{"count": count}})
}

// GetLegacyReviewCounts handles GET /api/v1/reviews/counts/legacy.
func (h *ReviewHandler) GetLegacyReviewCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.LegacyReviewCounts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: counts})
}

// SortReviews handles POST /api/v1/products/{productID}/reviews/sort.
func (h *ReviewHandler) SortReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SortReviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.ReviewsForSorting(r.Context(), productID, req.Filters)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// ListAuthorReviews handles GET /api/v1/authors/{authorID}/reviews.
func (h *ReviewHandler) ListAuthorReviews(w http.ResponseWriter, r *http.Request) {
	authorID, ok := httputil.ParseID(w, chi.URLParam(r, "authorID"))
	if !ok {
		return
	}

	q, ok := parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.ReviewsForAuthor(r.Context(), authorID, q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result.Payload()})
}

// GetReviewAttributeRating handles
// GET /api/v1/reviews/{reviewID}/ratings/{attributeID}.
func (h *ReviewHandler) GetReviewAttributeRating(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseID(w, chi.URLParam(r, "reviewID"))
	if !ok {
		return
	}
	attributeID, ok := httputil.ParseID(w, chi.URLParam(r, "attributeID"))
	if !ok {
		return
	}

	score, err := h.service.RatingForReviewAttribute(r.Context(), reviewID, attributeID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]int{"score": score}})
}
