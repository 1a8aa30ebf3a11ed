package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-studio/internal/document"
)

// SetFieldRequest represents the request body for PUT /api/resume/field.
type SetFieldRequest struct {
	Section string `json:"section"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value"`
	Index   *int   `json:"index,omitempty"`
}

// AddItemRequest represents the request body for POST /api/resume/items.
type AddItemRequest struct {
	Section string `json:"section"`
}

// MoveSectionRequest represents the request body for POST /api/resume/sections/move.
type MoveSectionRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

// handleGetResume returns the current document.
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleSetField updates one field of the document.
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Section == "" {
		s.errorResponse(w, http.StatusBadRequest, "section is required")
		return
	}

	if err := s.store.SetField(req.Section, req.Field, req.Value, req.Index); err != nil {
		s.documentErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleAddItem appends a blank entry to a list section.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.store.AddItem(req.Section)
	if err != nil {
		s.documentErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":     id,
		"resume": s.store.Snapshot(),
	})
}

// handleDeleteItem removes one entry from a list section.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := s.store.DeleteItem(section, index); err != nil {
		s.documentErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleMoveSection swaps a section with its neighbor in the display order.
func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var dir document.Direction
	switch req.Direction {
	case string(document.MoveUp):
		dir = document.MoveUp
	case string(document.MoveDown):
		dir = document.MoveDown
	default:
		s.errorResponse(w, http.StatusBadRequest, "direction must be \"up\" or \"down\"")
		return
	}

	if err := s.store.MoveSection(req.Index, dir); err != nil {
		s.documentErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// documentErrorResponse maps store errors to HTTP statuses.
func (s *Server) documentErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, document.ErrUnknownSection), errors.Is(err, document.ErrUnknownField):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, document.ErrIndexOutOfRange):
		s.errorResponse(w, http.StatusNotFound, err.Error())
	default:
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
