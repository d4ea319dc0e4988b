package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/covolex/internal/extract"
)

type resolveRequest struct {
	Path     string           `json:"path"`
	Brands   []string         `json:"brands"`
	Category extract.Category `json:"category"`
	Fields   []string         `json:"fields"`
}

type brandResult struct {
	Brand    string            `json:"brand"`
	Category extract.Category  `json:"category"`
	Values   map[string]string `json:"values"`
	Found    bool              `json:"found"`
}

// handleResolve runs the field-resolution engine once per requested brand.
// A miss (or an unexpected per-brand failure) is logged and reported with
// found=false; it never aborts the rest of the batch.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" || len(req.Brands) == 0 {
		jsonError(w, "path and brands are required", http.StatusBadRequest)
		return
	}
	// SubtagsForCategory doubles as the category guard: it fails with
	// *UnsupportedCategoryError for anything outside the enumeration.
	canonical, err := extract.SubtagsForCategory(req.Category)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = canonical
	}

	entry, err := s.cache.Load(req.Path)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	results := make([]brandResult, 0, len(req.Brands))
	for _, brand := range req.Brands {
		values, err := extract.ResolveValues(entry.Tree, brand, req.Category, fields)
		if err != nil {
			// Per-brand failure: log, mark, continue with the rest.
			s.log.Error("resolution failed", "brand", brand, "category", req.Category, "error", err)
			results = append(results, brandResult{Brand: brand, Category: req.Category, Found: false})
			continue
		}
		found := extract.Resolved(values) > 0
		if !found {
			s.log.Info("resolution miss", "brand", brand, "category", req.Category, "path", req.Path)
		}
		results = append(results, brandResult{
			Brand:    brand,
			Category: req.Category,
			Values:   values,
			Found:    found,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
