// Package handler implements the HTTP surface through which presentation
// collaborators read the portfolio view model and invoke store mutators.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hybel/portfolio/internal/portfolio"
	"github.com/hybel/portfolio/internal/source"
	"github.com/hybel/portfolio/internal/store"
	"github.com/hybel/portfolio/internal/types"
	"github.com/hybel/portfolio/internal/worker"
)

// PortfolioHandler serves the dashboard view model and filter mutations.
type PortfolioHandler struct {
	store  *store.Store
	loader *worker.Loader
	src    source.DataSource
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(st *store.Store, loader *worker.Loader, src source.DataSource) *PortfolioHandler {
	return &PortfolioHandler{store: st, loader: loader, src: src}
}

// GetViewModel returns the complete current snapshot.
func (h *PortfolioHandler) GetViewModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ViewModel())
}

// ListProperties returns the filtered collection, optionally sorted via
// ?sort=rent&dir=desc. Sorting is presentation-side; it never affects the
// snapshot's own ordering.
func (h *PortfolioHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	vm := h.store.ViewModel()
	properties := vm.FilteredProperties

	if field := r.URL.Query().Get("sort"); field != "" {
		opts := types.SortOptions{
			Field:     types.PropertySortField(field),
			Direction: types.SortAsc,
		}
		if r.URL.Query().Get("dir") == string(types.SortDesc) {
			opts.Direction = types.SortDesc
		}
		properties = portfolio.SortProperties(properties, opts)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"properties":  properties,
		"total_count": len(properties),
	})
}

// GetPropertyDetail returns the single-property view model. The property
// itself comes from the source; its payment history comes from the store.
func (h *PortfolioHandler) GetPropertyDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := h.src.GetPropertyByID(r.Context(), id)
	if err != nil {
		sourceErrorToHTTP(w, err)
		return
	}

	vm := portfolio.BuildPropertyDetail(property, h.store.Payments(), false, "", h.store.Now())
	writeJSON(w, http.StatusOK, vm)
}

// UpdateFilters patches the filter spec and returns the new snapshot.
func (h *PortfolioHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var patch portfolio.FilterPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	h.store.UpdateFilters(patch)
	writeJSON(w, http.StatusOK, h.store.ViewModel())
}

// ResetFilters restores the default filter spec and returns the new snapshot.
func (h *PortfolioHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.store.ResetFilters()
	writeJSON(w, http.StatusOK, h.store.ViewModel())
}

// Reload begins an asynchronous load from the source. The response reflects
// the loading state immediately; completion arrives via the store.
func (h *PortfolioHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.loader.LoadAsync(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusAccepted, h.store.ViewModel())
}
