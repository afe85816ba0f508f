// internal/handlers/board_handlers.go
package handlers

import (
	"net/http"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
)

// HandleBoards handles board listing, lookup by code or name, and keyword
// search over name, code or description.
func (s *Server) HandleBoards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query()

		switch {
		case query.Get("code") != "":
			board, err := s.Boards.GetByCode(r.Context(), query.Get("code"))
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, http.StatusOK, board)

		case query.Get("name") != "":
			board, err := s.Boards.GetByName(r.Context(), query.Get("name"))
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, http.StatusOK, board)

		case query.Get("search") != "":
			keyword := query.Get("search")
			var boards []*models.Board
			var err error
			switch query.Get("by") {
			case "code":
				boards, err = s.Boards.SearchByCode(r.Context(), keyword)
			case "description":
				boards, err = s.Boards.SearchByDescription(r.Context(), keyword)
			default:
				boards, err = s.Boards.SearchByName(r.Context(), keyword)
			}
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, http.StatusOK, boards)

		default:
			boards, err := s.Boards.GetAll(r.Context())
			if err != nil {
				s.writeError(w, err)
				return
			}
			s.writeJSON(w, http.StatusOK, boards)
		}
	}
}

// HandleBoardPosts lists the posts of one board, identified by code, in
// the requested order (newest, oldest, views, recommends).
func (s *Server) HandleBoardPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Board code required", http.StatusBadRequest)
			return
		}

		// Confirm the board exists so an unknown code is a 404, not an
		// empty listing.
		if _, err := s.Boards.GetByCode(r.Context(), code); err != nil {
			s.writeError(w, err)
			return
		}

		order := models.PostOrder(r.URL.Query().Get("order"))
		posts, err := s.Posts.GetByBoardCode(r.Context(), code, order)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, posts)
	}
}
