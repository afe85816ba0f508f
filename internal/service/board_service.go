// internal/service/board_service.go
package service

import (
	"context"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
)

// BoardService handles board lookups. Boards are created by the startup
// seeder, so the service is read-only.
type BoardService struct {
	boards database.BoardStore
}

func NewBoardService(boards database.BoardStore) *BoardService {
	return &BoardService{boards: boards}
}

// GetAll returns every board.
func (s *BoardService) GetAll(ctx context.Context) ([]*models.Board, error) {
	return s.boards.GetAllBoards(ctx)
}

// GetByCode fetches a board by its exact code (e.g. "male").
func (s *BoardService) GetByCode(ctx context.Context, code string) (*models.Board, error) {
	return s.boards.GetBoardByCode(ctx, code)
}

// GetByName fetches a board by its exact name.
func (s *BoardService) GetByName(ctx context.Context, name string) (*models.Board, error) {
	return s.boards.GetBoardByName(ctx, name)
}

// SearchByName returns boards whose name contains the keyword.
func (s *BoardService) SearchByName(ctx context.Context, keyword string) ([]*models.Board, error) {
	return s.boards.SearchBoardsByName(ctx, keyword)
}

// SearchByCode returns boards whose code contains the keyword.
func (s *BoardService) SearchByCode(ctx context.Context, keyword string) ([]*models.Board, error) {
	return s.boards.SearchBoardsByCode(ctx, keyword)
}

// SearchByDescription returns boards whose description contains the keyword.
func (s *BoardService) SearchByDescription(ctx context.Context, keyword string) ([]*models.Board, error) {
	return s.boards.SearchBoardsByDescription(ctx, keyword)
}
