package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/rendering"
)

// ExportRequest represents the request body for POST /api/export.
type ExportRequest struct {
	Template string `json:"template,omitempty"`
}

// handleRender returns the render tree for the current document as JSON.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := rendering.ResolveTemplate(rendering.TemplateID(r.URL.Query().Get("template")))
	tree := rendering.Render(s.store.Snapshot(), id)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"template": id,
		"tree":     tree,
	})
}

// handlePreview serves the print-ready HTML preview of the current document.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := rendering.ResolveTemplate(rendering.TemplateID(r.URL.Query().Get("template")))
	tree := rendering.Render(s.store.Snapshot(), id)

	page, err := rendering.HTML(tree)
	if err != nil {
		s.logger.Error().Err(err).Msg("preview rendering failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, page)
}

// handleExport prints the preview to PDF and streams it back.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	id := rendering.ResolveTemplate(rendering.TemplateID(req.Template))

	previewURL := url.URL{
		Scheme:   "http",
		Host:     "127.0.0.1:" + strconv.Itoa(s.port),
		Path:     "/preview",
		RawQuery: "template=" + string(id),
	}

	pdf, err := s.printPDF(r.Context(), previewURL.String(), &export.Options{})
	if err != nil {
		s.logger.Error().Err(err).Msg("pdf export failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to export PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Error().Err(err).Msg("writing pdf response")
	}
}
