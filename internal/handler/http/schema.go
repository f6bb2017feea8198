package http

import (
	"net/http"

	"github.com/utafrali/reviews-service/internal/domain"
	"github.com/utafrali/reviews-service/pkg/httputil"
)

// ListTables handles GET /api/v1/tables: the fixed registry of logical
// tables, used by admin tooling to validate table selections.
func ListTables(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Tables()})
}
