// internal/database/board_store.go
package database

import (
	"context"
	"database/sql"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"

	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"
)

const boardColumns = `id, code, name, description, created_at, updated_at`

// GetAllBoards fetches all board records.
func (p *PostgresDB) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY created_at`
	boards := []*models.Board{}
	err := p.DB.SelectContext(ctx, &boards, query)
	if err != nil {
		return nil, databaseError("failed to query all boards", err)
	}
	return boards, nil
}

// GetBoardByCode fetches a board by its exact code.
func (p *PostgresDB) GetBoardByCode(ctx context.Context, code string) (*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE code = $1`
	var board models.Board
	err := p.DB.GetContext(ctx, &board, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewBoardNotFoundError("code " + code)
		}
		return nil, databaseError("failed to query board by code", err)
	}
	return &board, nil
}

// GetBoardByName fetches a board by its exact name.
func (p *PostgresDB) GetBoardByName(ctx context.Context, name string) (*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE name = $1`
	var board models.Board
	err := p.DB.GetContext(ctx, &board, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewBoardNotFoundError("name " + name)
		}
		return nil, databaseError("failed to query board by name", err)
	}
	return &board, nil
}

// SearchBoardsByName fetches boards whose name contains the keyword.
func (p *PostgresDB) SearchBoardsByName(ctx context.Context, keyword string) ([]*models.Board, error) {
	return p.searchBoards(ctx, "name", keyword)
}

// SearchBoardsByCode fetches boards whose code contains the keyword.
func (p *PostgresDB) SearchBoardsByCode(ctx context.Context, keyword string) ([]*models.Board, error) {
	return p.searchBoards(ctx, "code", keyword)
}

// SearchBoardsByDescription fetches boards whose description contains the keyword.
func (p *PostgresDB) SearchBoardsByDescription(ctx context.Context, keyword string) ([]*models.Board, error) {
	return p.searchBoards(ctx, "description", keyword)
}

func (p *PostgresDB) searchBoards(ctx context.Context, column, keyword string) ([]*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE ` + column + ` LIKE '%' || $1 || '%' ORDER BY created_at`
	boards := []*models.Board{}
	err := p.DB.SelectContext(ctx, &boards, query, escapeLike(keyword))
	if err != nil {
		return nil, databaseError("failed to search boards by "+column, err)
	}
	return boards, nil
}

// CreateBoard inserts a new board record.
func (p *PostgresDB) CreateBoard(ctx context.Context, board *models.Board) error {
	stampTimestamps(&board.Entity)

	query := `
		INSERT INTO boards (id, code, name, description, created_at, updated_at)
		VALUES (:id, :code, :name, :description, :created_at, :updated_at)
	`
	_, err := p.DB.NamedExecContext(ctx, query, board)
	if err != nil {
		if isUniqueViolation(err, "") {
			return utils.NewAppError(utils.ErrDuplicate, "board already exists: "+board.Code, err)
		}
		return databaseError("failed to create board", err)
	}
	return nil
}

// CountBoards returns the number of board records.
func (p *PostgresDB) CountBoards(ctx context.Context) (int, error) {
	var count int
	err := p.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM boards`)
	if err != nil {
		return 0, databaseError("failed to count boards", err)
	}
	return count, nil
}
