package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/covolex/internal/report"
)

var reportContentTypes = map[report.Format]string{
	report.FormatXML: "application/xml; charset=utf-8",
	report.FormatPDF: "application/pdf",
	report.FormatTXT: "text/plain; charset=utf-8",
}

// handleGenerateReport renders the accumulated selection with the loaded
// document's metadata and streams the payload back with a suggested file
// name. The selection is cleared only after a successful render; a
// validation failure leaves it untouched.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path   string `json:"path"`
		Format string `json:"format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	format, err := report.ParseFormat(req.Format)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.cache.Load(req.Path)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	now := time.Now().In(s.cfg.Location())
	payload, name, err := report.Generate(s.selection.Items(), entry.Metadata, format, now)
	if err != nil {
		s.log.Error("report generation failed", "format", format, "error", err)
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	s.selection.Clear()
	s.log.Info("report generated", "format", format, "name", name, "bytes", len(payload))

	w.Header().Set("Content-Type", reportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
