package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/ingestion"
)

var validate = validator.New()

// SettingsResponse is the GET /api/settings shape. The credential is masked.
type SettingsResponse struct {
	EndpointURL string `json:"endpoint_url"`
	Credential  string `json:"credential"`
	Model       string `json:"model"`
}

// JobRequest represents the request body for PUT /api/job.
type JobRequest struct {
	Description string `json:"description"`
}

// FetchJobRequest represents the request body for POST /api/job/fetch.
type FetchJobRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
}

// Validate checks the request shape.
func (r *FetchJobRequest) Validate() error {
	return validate.Struct(r)
}

// handleGetSettings returns the active endpoint triple with the credential
// masked. The full credential never leaves the server.
func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	current := s.settings.Get()
	s.jsonResponse(w, http.StatusOK, SettingsResponse{
		EndpointURL: current.EndpointURL,
		Credential:  maskCredential(current.Credential),
		Model:       current.Model,
	})
}

// handlePutSettings replaces the endpoint triple.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req config.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.settings.Set(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid settings: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handlePutJob sets or, with an empty description, clears the target-job
// context.
func (s *Server) handlePutJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.assistant.SetJobDescription(req.Description)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"set": s.assistant.JobDescription() != "",
	})
}

// handleFetchJob retrieves a posting from a URL and installs its text as the
// target-job context.
func (s *Server) handleFetchJob(w http.ResponseWriter, r *http.Request) {
	var req FetchJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "url must be a valid URL")
		return
	}

	opts := ingestion.DefaultOptions()
	opts.UseBrowser = req.UseBrowser

	ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
	defer cancel()

	result, err := s.fetchPosting(ctx, req.URL, opts)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", req.URL).Msg("job posting fetch failed")
		s.errorResponse(w, http.StatusBadGateway, "failed to fetch job posting")
		return
	}

	s.assistant.SetJobDescription(result.Text)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":         result.URL,
		"description": result.Text,
	})
}

// maskCredential hides all but the edges of a credential.
func maskCredential(cred string) string {
	if cred == "" {
		return ""
	}
	if len(cred) <= 8 {
		return "********"
	}
	return cred[:4] + "****" + cred[len(cred)-4:]
}
