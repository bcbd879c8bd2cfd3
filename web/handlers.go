/* handlers.go
 * HTTP handlers for the two callable operations. Validation failures are
 * returned with their descriptive message as invalid-argument; everything
 * else is logged in full and surfaced only as a generic internal error.
 */

package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"matchroom/api/api"
	"matchroom/api/shared"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MigrateGuestHandler serves POST /functions/migrateGuestToMember
func (s *Server) MigrateGuestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "invalid-argument", "Method not allowed")
		return
	}

	var req api.MigrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "Malformed request body")
		return
	}

	resp, err := s.api.MigrateGuestToMember(r.Context(), userFromContext(r.Context()), req)
	if err != nil {
		s.writeOperationError(w, "migrateGuestToMember", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// JoinGroupHandler serves POST /functions/joinGroup
func (s *Server) JoinGroupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "invalid-argument", "Method not allowed")
		return
	}

	var req api.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid-argument", "Malformed request body")
		return
	}

	resp, err := s.api.JoinGroup(r.Context(), userFromContext(r.Context()), req)
	if err != nil {
		s.writeOperationError(w, "joinGroup", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeOperationError maps an operation error onto the wire: validation
// errors keep their message, anything else leaks nothing.
func (s *Server) writeOperationError(w http.ResponseWriter, op string, err error) {
	if shared.IsValidation(err) {
		writeError(w, http.StatusBadRequest, "invalid-argument", shared.ValidationMessage(err))
		return
	}
	s.log.Error("internal error in callable operation", zap.String("operation", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal", "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Success: false, Code: code, Message: message})
}
