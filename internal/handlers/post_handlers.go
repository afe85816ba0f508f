// internal/handlers/post_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/middleware"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"

	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a post. The author is
// the authenticated member; the board is addressed by its code.
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	BoardCode string `json:"boardCode"`
}

// UpdatePostRequest carries the editable post fields
type UpdatePostRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RecommendPostRequest represents a recommendation by the authenticated member
type RecommendPostRequest struct {
	PostID string `json:"postId"`
}

// PostResponse decorates a post with its recommendation count.
type PostResponse struct {
	*models.Post
	RecommendationCount int `json:"recommendationCount"`
}

// HandlePostCreate handles requests to create a post
func (s *Server) HandlePostCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		memberID, ok := middleware.GetMemberIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		board, err := s.Boards.GetByCode(r.Context(), req.BoardCode)
		if err != nil {
			s.writeError(w, err)
			return
		}

		post, err := s.Posts.Register(r.Context(), req.Title, req.Content, memberID, board.ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, post)
	}
}

// HandlePostView handles a post detail view: it returns the post and
// increments the view count by one on every call.
func (s *Server) HandlePostView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		post, err := s.Posts.View(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}

		count, err := s.Posts.RecommendationCount(r.Context(), post.ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, &PostResponse{Post: post, RecommendationCount: count})
	}
}

// HandlePostSearch handles post search by title, content, author keyword,
// exact author username, or creation period.
func (s *Server) HandlePostSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query()
		var posts []*models.Post
		var err error

		switch {
		case query.Get("title") != "":
			posts, err = s.Posts.SearchByTitle(r.Context(), query.Get("title"))
		case query.Get("content") != "":
			posts, err = s.Posts.SearchByContent(r.Context(), query.Get("content"))
		case query.Get("author") != "":
			posts, err = s.Posts.SearchByAuthorUsername(r.Context(), query.Get("author"))
		case query.Get("member") != "":
			posts, err = s.Posts.GetByAuthor(r.Context(), query.Get("member"))
		case query.Get("from") != "" && query.Get("to") != "":
			var from, to time.Time
			from, err = time.Parse(time.RFC3339, query.Get("from"))
			if err == nil {
				to, err = time.Parse(time.RFC3339, query.Get("to"))
			}
			if err != nil {
				http.Error(w, "Invalid time format, use RFC3339", http.StatusBadRequest)
				return
			}
			posts, err = s.Posts.GetCreatedBetween(r.Context(), from, to)
		default:
			http.Error(w, "title, content, author, member or from/to parameter required", http.StatusBadRequest)
			return
		}

		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, posts)
	}
}

// HandlePostUpdate lets the post's author edit its title and content.
func (s *Server) HandlePostUpdate() http.HandlerFunc {
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

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		id, err := uuid.Parse(req.ID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		existing, err := s.Posts.GetByID(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if existing.AuthorID != memberID {
			http.Error(w, "Only the author can edit this post", http.StatusForbidden)
			return
		}

		post, err := s.Posts.Update(r.Context(), id, req.Title, req.Content)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, post)
	}
}

// HandlePostDelete lets the post's author delete it; the storage cascade
// removes its recommendations.
func (s *Server) HandlePostDelete() http.HandlerFunc {
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

		id, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		existing, err := s.Posts.GetByID(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if existing.AuthorID != memberID {
			http.Error(w, "Only the author can delete this post", http.StatusForbidden)
			return
		}

		if err := s.Posts.DeleteByID(r.Context(), id); err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// HandlePostRecommend records a recommendation by the authenticated member
// and returns the post's updated recommendation count.
func (s *Server) HandlePostRecommend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		memberID, ok := middleware.GetMemberIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req RecommendPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		if err := s.Posts.Recommend(r.Context(), postID, memberID); err != nil {
			s.writeError(w, err)
			return
		}

		count, err := s.Posts.RecommendationCount(r.Context(), postID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":             true,
			"recommendationCount": count,
		})
	}
}
