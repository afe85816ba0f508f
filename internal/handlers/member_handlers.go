// internal/handlers/member_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/HY-spring-study/OJT-jinsoo/internal/middleware"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
)

// RegisterMemberRequest represents a request to register a new member
type RegisterMemberRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a request to log in a member
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a response to a login request
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	Error    string `json:"error,omitempty"`
	MemberID string `json:"memberId,omitempty"`
}

// UpdateMemberRequest carries the fields a member may change
type UpdateMemberRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleMemberRegistration handles requests to register a new member
func (s *Server) HandleMemberRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		member, err := s.Members.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, member)
	}
}

// HandleMemberLogin handles requests to log in a member. Unknown username
// and wrong password are deliberately reported with one generic message so
// the response does not reveal which of the two failed.
func (s *Server) HandleMemberLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		member, err := s.Members.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrMemberNotFound) || utils.IsErrorCode(err, utils.ErrInvalidCredentials) {
				if s.Metrics != nil {
					s.Metrics.IncrementErrors()
				}
				s.writeJSON(w, http.StatusUnauthorized, &LoginResponse{
					Success: false,
					Error:   "Invalid username or password",
				})
				return
			}
			s.writeError(w, err)
			return
		}

		token, err := middleware.GenerateToken(member.ID)
		if err != nil {
			http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
			return
		}

		s.writeJSON(w, http.StatusOK, &LoginResponse{
			Success:  true,
			Token:    token,
			MemberID: member.ID.String(),
		})
	}
}

// HandleMembers handles member lookup by id, exact username, or username
// search keyword.
func (s *Server) HandleMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		switch {
		case r.URL.Query().Get("id") != "":
			id, err := uuid.Parse(r.URL.Query().Get("id"))
			if err != nil {
				http.Error(w, "Invalid member ID format", http.StatusBadRequest)
				return
			}
			member, err := s.Members.GetByID(r.Context(), id)
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, http.StatusOK, member)

		case r.URL.Query().Get("username") != "":
			member, err := s.Members.GetByUsername(r.Context(), r.URL.Query().Get("username"))
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, http.StatusOK, member)

		case r.URL.Query().Get("search") != "":
			members, err := s.Members.SearchByUsername(r.Context(), r.URL.Query().Get("search"))
			if err != nil {
				s.writeError(w, err)
				return
			}
			if members == nil {
				members = []*models.Member{}
			}
			s.writeJSON(w, http.StatusOK, members)

		default:
			http.Error(w, "id, username or search parameter required", http.StatusBadRequest)
		}
	}
}

// HandleMemberUpdate lets the authenticated member change their own
// username and password.
func (s *Server) HandleMemberUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		memberID, ok := middleware.GetMemberIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req UpdateMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		member, err := s.Members.Update(r.Context(), memberID, req.Username, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, member)
	}
}

// HandleMemberDelete deletes the authenticated member's account.
func (s *Server) HandleMemberDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		memberID, ok := middleware.GetMemberIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		if err := s.Members.DeleteByID(r.Context(), memberID); err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
