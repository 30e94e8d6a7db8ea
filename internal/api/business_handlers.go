package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gymlink-api/internal/common/errors"
	commonhttp "gymlink-api/internal/common/http"
	"gymlink-api/internal/models"
)

type listResponse struct {
	Success bool                    `json:"success"`
	Data    []models.BusinessRecord `json:"data"`
	Total   int                     `json:"total"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type naturalSearchResponse struct {
	Success        bool                    `json:"success"`
	Data           []models.BusinessRecord `json:"data"`
	Total          int                     `json:"total"`
	AppliedFilters models.FilterSet        `json:"appliedFilters"`
	OriginalQuery  string                  `json:"originalQuery"`
}

func (h *handlers) listBusinesses(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		commonhttp.Error(w, err, h.logger)
		return
	}

	records := h.directory.List(filter)
	commonhttp.JSON(w, http.StatusOK, listResponse{Success: true, Data: records, Total: len(records)}, h.logger)
}

func (h *handlers) getBusiness(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		commonhttp.Error(w, errors.NewInvalidBusinessIDError(raw), h.logger)
		return
	}

	record, err := h.directory.Get(id)
	if err != nil {
		commonhttp.Error(w, err, h.logger)
		return
	}

	commonhttp.JSON(w, http.StatusOK, dataResponse{Success: true, Data: record}, h.logger)
}

func (h *handlers) filterOptions(w http.ResponseWriter, r *http.Request) {
	commonhttp.JSON(w, http.StatusOK, dataResponse{Success: true, Data: h.directory.FilterOptions()}, h.logger)
}

func (h *handlers) naturalSearch(w http.ResponseWriter, r *http.Request) {
	var req naturalSearchRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		commonhttp.Error(w, err, h.logger)
		return
	}

	result, err := h.search.NaturalLanguage(r.Context(), req.Query)
	if err != nil {
		commonhttp.Error(w, err, h.logger)
		return
	}

	commonhttp.JSON(w, http.StatusOK, naturalSearchResponse{
		Success:        true,
		Data:           result.MatchedRecords,
		Total:          result.TotalCount,
		AppliedFilters: result.AppliedFilterSet,
		OriginalQuery:  result.OriginalQuery,
	}, h.logger)
}

func parseListFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Location: strings.TrimSpace(q.Get("location")),
		Vibe:     strings.TrimSpace(q.Get("vibe")),
		Service:  strings.TrimSpace(q.Get("service")),
		Search:   strings.TrimSpace(q.Get("search")),
	}

	var err error
	if filter.MinPrice, err = parsePrice(q.Get("minPrice"), "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(q.Get("maxPrice"), "maxPrice"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parsePrice(raw, param string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.NewInvalidFilterValueError(param, raw)
	}
	return &v, nil
}
