// internal/handlers/handlers.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/service"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"
)

// Server holds all server dependencies: the domain services, the store for
// health counts, and the metrics collector.
type Server struct {
	Members *service.MemberService
	Boards  *service.BoardService
	Posts   *service.PostService
	Store   database.Store
	Metrics *utils.MetricsCollector
}

// NewServer creates a new Server instance with the given components
func NewServer(store database.Store, metrics *utils.MetricsCollector) *Server {
	return &Server{
		Members: service.NewMemberService(store),
		Boards:  service.NewBoardService(store),
		Posts:   service.NewPostService(store, store),
		Store:   store,
		Metrics: metrics,
	}
}

// Routes returns the server's route table with per-operation metrics
// applied. Authentication and CORS wrapping happen at the call site.
func (s *Server) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/health":           s.withMetrics("health", s.HandleHealth()),
		"/members/register": s.withMetrics("member_register", s.HandleMemberRegistration()),
		"/members/login":    s.withMetrics("member_login", s.HandleMemberLogin()),
		"/members":          s.withMetrics("member_lookup", s.HandleMembers()),
		"/members/update":   s.withMetrics("member_update", s.HandleMemberUpdate()),
		"/members/delete":   s.withMetrics("member_delete", s.HandleMemberDelete()),
		"/boards":           s.withMetrics("board_lookup", s.HandleBoards()),
		"/boards/posts":     s.withMetrics("board_posts", s.HandleBoardPosts()),
		"/posts":            s.withMetrics("post_create", s.HandlePostCreate()),
		"/posts/view":       s.withMetrics("post_view", s.HandlePostView()),
		"/posts/search":     s.withMetrics("post_search", s.HandlePostSearch()),
		"/posts/update":     s.withMetrics("post_update", s.HandlePostUpdate()),
		"/posts/delete":     s.withMetrics("post_delete", s.HandlePostDelete()),
		"/posts/recommend":  s.withMetrics("post_recommend", s.HandlePostRecommend()),
	}
}

// withMetrics counts the request and records the handler's latency under
// the given operation name.
func (s *Server) withMetrics(operation string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Metrics == nil {
			handler(w, r)
			return
		}
		s.Metrics.IncrementRequests()
		start := time.Now()
		handler(w, r)
		s.Metrics.AddOperationLatency(operation, time.Since(start))
	}
}

// writeJSON encodes v as the response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps an error to an HTTP status and a JSON error body.
// Application errors keep their code; anything else is reported as an
// internal error without leaking details.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if s.Metrics != nil {
		s.Metrics.IncrementErrors()
	}

	appErr, ok := err.(*utils.AppError)
	if !ok {
		log.Printf("Unexpected error: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"code":  utils.ErrDatabase,
			"error": "internal server error",
		})
		return
	}

	status := utils.AppErrorToHTTPStatus(appErr.Code)
	if status == http.StatusInternalServerError {
		log.Printf("Storage error: %v", appErr)
	}
	s.writeJSON(w, status, map[string]string{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}
