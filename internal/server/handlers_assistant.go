package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-studio/internal/assistant"
)

// AssistantRequest represents the request body for POST /api/assistant.
type AssistantRequest struct {
	Instruction string `json:"instruction"`
}

// AssistantResponse represents the response for POST /api/assistant.
type AssistantResponse struct {
	Analysis    string   `json:"analysis,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Updated     bool     `json:"updated"`
	Message     string   `json:"message,omitempty"`
}

// handleAssistant submits one instruction to the optimization protocol.
// While a request is in flight further submissions get 409, not a queue
// slot. Failures return 502 with the same message that was appended to the
// conversation.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.assistant.Submit(r.Context(), req.Instruction)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyInstruction):
			s.errorResponse(w, http.StatusBadRequest, "instruction is required")
		case errors.Is(err, assistant.ErrBusy):
			s.errorResponse(w, http.StatusConflict, "a request is already in progress")
		default:
			s.jsonResponse(w, http.StatusBadGateway, AssistantResponse{
				Message: assistant.FailureMessage,
			})
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, AssistantResponse{
		Analysis:    result.Analysis,
		Suggestions: result.Suggestions,
		Updated:     result.Updated,
	})
}

// handleConversation returns the full conversation history.
func (s *Server) handleConversation(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"state":   s.assistant.State(),
		"entries": s.log.Entries(),
	})
}
