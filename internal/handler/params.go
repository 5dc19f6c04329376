package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// Parameter binding uses the same runtime helpers as oapi-codegen's generated
// chi wrappers, so path and query values are parsed per spec/openapi.yaml.

func pathParam(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return fmt.Errorf("invalid format for parameter %s", name)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := pathParam(r, name, &id)
	return id, err
}

func pathDay(r *http.Request, name string) (schedule.Day, error) {
	var d openapi_types.Date
	if err := pathParam(r, name, &d); err != nil {
		return schedule.Day{}, err
	}
	return schedule.DayOf(d.Time), nil
}

func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s", name)
	}
	return nil
}

// paginationParams reads the optional page and limit query parameters.
func paginationParams(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	if err := queryParam(r, "page", &page); err != nil {
		return domain.PaginationParams{}, err
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

func toPagination(p domain.PaginationParams, total int64) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: int(total)}
}

// decodeBody decodes the JSON request body into dst. On failure it writes a
// 400 (or 413 when the body exceeds the configured limit) and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeJSON(w, http.StatusBadRequest, requestBody("request body is required"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: ErrorDetail{Code: "payload_too_large", Message: "request body too large"},
			})
			return false
		}
		writeJSON(w, http.StatusBadRequest, requestBody("malformed JSON body: "+err.Error()))
		return false
	}
	return true
}

// badParam writes a 400 for a path or query parameter that failed to bind.
func badParam(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
}

func toDate(d schedule.Day) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func fromDate(d openapi_types.Date) schedule.Day {
	return schedule.DayOf(d.Time)
}

// optional returns nil for the empty string so it is omitted from JSON.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
