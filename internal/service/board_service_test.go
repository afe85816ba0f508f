// internal/service/board_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/stretchr/testify/assert"
)

func newBoardFixture(t *testing.T) *BoardService {
	t.Helper()
	ctx := context.Background()
	store := database.NewMemoryStore()

	boards := []*models.Board{
		models.NewBoard("male", "자기소개(남)", "남자가 본인을 소개하는 게시판"),
		models.NewBoard("female", "자기소개(여)", "여자가 본인을 소개하는 게시판"),
	}
	for _, board := range boards {
		assert.NoError(t, store.CreateBoard(ctx, board))
	}
	return NewBoardService(store)
}

func TestBoardLookup(t *testing.T) {
	ctx := context.Background()
	svc := newBoardFixture(t)

	all, err := svc.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	board, err := svc.GetByCode(ctx, "male")
	assert.NoError(t, err)
	assert.Equal(t, "자기소개(남)", board.Name)

	board, err = svc.GetByName(ctx, "자기소개(여)")
	assert.NoError(t, err)
	assert.Equal(t, "female", board.Code)

	// Unknown code and name are not-found errors
	_, err = svc.GetByCode(ctx, "unknown")
	assert.True(t, utils.IsErrorCode(err, utils.ErrBoardNotFound))

	_, err = svc.GetByName(ctx, "unknown")
	assert.True(t, utils.IsErrorCode(err, utils.ErrBoardNotFound))
}

func TestBoardSearch(t *testing.T) {
	ctx := context.Background()
	svc := newBoardFixture(t)

	byName, err := svc.SearchByName(ctx, "자기소개")
	assert.NoError(t, err)
	assert.Len(t, byName, 2)

	byCode, err := svc.SearchByCode(ctx, "fem")
	assert.NoError(t, err)
	assert.Len(t, byCode, 1)
	assert.Equal(t, "female", byCode[0].Code)

	byDescription, err := svc.SearchByDescription(ctx, "남자")
	assert.NoError(t, err)
	assert.Len(t, byDescription, 1)

	// No match is an empty slice, not an error
	none, err := svc.SearchByName(ctx, "없는게시판")
	assert.NoError(t, err)
	assert.Empty(t, none)
}
