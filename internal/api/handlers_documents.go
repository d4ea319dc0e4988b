package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/covolex/internal/extract"
	"github.com/dgallion1/covolex/internal/session"
)

// handleLoadDocument loads (or returns the cached parse of) a Covol XML
// document and reports everything the interactive layer needs to start a
// session: brands, categories, and metadata.
func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	entry, err := s.cache.Load(req.Path)
	if err != nil {
		s.log.Error("document load failed", "path", req.Path, "error", err)
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"path":       entry.Path,
		"name":       entry.Name,
		"size":       entry.SizeString(),
		"brands":     entry.Brands,
		"categories": entry.Categories,
		"metadata":   entry.Metadata,
	})
}

// handleInvalidateDocument drops the cached parse so the next load re-reads
// the file.
func (s *Server) handleInvalidateDocument(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invalidated": s.cache.Invalidate(path)})
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loadedEntry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"brands": entry.Brands})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loadedEntry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": entry.Categories})
}

// handleSubtags returns the canonical subtag order for a category. With a
// path and brand it instead reports the subtags actually resolvable in
// that document's brand scope.
func (s *Server) handleSubtags(w http.ResponseWriter, r *http.Request) {
	cat := extract.Category(chi.URLParam(r, "category"))

	path := r.URL.Query().Get("path")
	brand := r.URL.Query().Get("brand")

	if path == "" || brand == "" {
		subtags, err := extract.SubtagsForCategory(cat)
		if err != nil {
			jsonError(w, err.Error(), errorStatus(err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"category": cat, "subtags": subtags})
		return
	}

	entry, err := s.cache.Load(path)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	subtags, err := extract.AvailableSubtags(entry.Tree, brand, cat)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": cat,
		"brand":    brand,
		"subtags":  subtags,
	})
}

// loadedEntry resolves the ?path= query parameter against the cache,
// loading on demand, and writes the error response itself on failure.
func (s *Server) loadedEntry(w http.ResponseWriter, r *http.Request) (*session.Entry, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return nil, false
	}
	e, err := s.cache.Load(path)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return nil, false
	}
	return e, true
}
