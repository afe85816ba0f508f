// internal/handlers/core_handlers.go
package handlers

import (
	"fmt"
	"net/http"
)

// HandleHealth reports basic liveness plus board and post counts.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardCount, err := s.Store.CountBoards(r.Context())
		if err != nil {
			http.Error(w, "Failed to get board count", http.StatusInternalServerError)
			return
		}

		postCount, err := s.Store.CountPosts(r.Context())
		if err != nil {
			http.Error(w, "Failed to get post count", http.StatusInternalServerError)
			return
		}

		requests, errors := uint64(0), uint64(0)
		if s.Metrics != nil {
			requests, errors, _ = s.Metrics.Snapshot()
		}

		response := fmt.Sprintf("Community Status:\n"+
			"- Total Boards: %d\n"+
			"- Total Posts: %d\n"+
			"- Requests Served: %d\n"+
			"- Errors: %d\n",
			boardCount,
			postCount,
			requests,
			errors,
		)

		fmt.Fprint(w, response)
	}
}
