package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/covolex/internal/extract"
	"github.com/dgallion1/covolex/internal/report"
)

// handleAddSelection accumulates tuples for the report. Duplicates on
// (brand, category, field) are counted as already present, not re-added.
// Items are checked against the category enumeration and the element-name
// syntax up front; a bad tuple must never reach a renderer.
func (s *Server) handleAddSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []report.Item `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		jsonError(w, "at least one item is required", http.StatusBadRequest)
		return
	}
	for _, it := range req.Items {
		if !extract.ValidCategory(it.Category) {
			jsonError(w, (&extract.UnsupportedCategoryError{Category: string(it.Category)}).Error(),
				http.StatusBadRequest)
			return
		}
		if !report.ValidFieldName(it.Field) {
			jsonError(w, fmt.Sprintf("invalid field name: %q", it.Field), http.StatusBadRequest)
			return
		}
	}

	added, existing := s.selection.AddAll(req.Items)
	writeJSON(w, http.StatusOK, map[string]any{
		"added":           added,
		"already_present": existing,
		"total":           s.selection.Len(),
	})
}

func (s *Server) handleListSelection(w http.ResponseWriter, r *http.Request) {
	items := s.selection.Items()
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.selection.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"total": 0})
}

func (s *Server) handleRemoveSelection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	brand, category, field := q.Get("brand"), q.Get("category"), q.Get("field")
	if brand == "" || category == "" || field == "" {
		jsonError(w, "brand, category and field query parameters are required", http.StatusBadRequest)
		return
	}
	removed := s.selection.Remove(brand, category, field)
	if !removed {
		jsonError(w, "selection item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"removed": true,
		"total":   s.selection.Len(),
	})
}
