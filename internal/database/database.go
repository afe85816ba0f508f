// internal/database/database.go
package database

import (
	"context"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"

	"github.com/google/uuid"
)

// MemberStore is the persistence port for members.
type MemberStore interface {
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetMemberByUsername(ctx context.Context, username string) (*models.Member, error)
	SearchMembersByUsername(ctx context.Context, keyword string) ([]*models.Member, error)
	MemberExists(ctx context.Context, id uuid.UUID) (bool, error)
	SaveMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

// BoardStore is the persistence port for boards. Boards are created by the
// startup seeder only, so there is no update or delete.
type BoardStore interface {
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardByCode(ctx context.Context, code string) (*models.Board, error)
	GetBoardByName(ctx context.Context, name string) (*models.Board, error)
	SearchBoardsByName(ctx context.Context, keyword string) ([]*models.Board, error)
	SearchBoardsByCode(ctx context.Context, keyword string) ([]*models.Board, error)
	SearchBoardsByDescription(ctx context.Context, keyword string) ([]*models.Board, error)
	CreateBoard(ctx context.Context, board *models.Board) error
	CountBoards(ctx context.Context) (int, error)
}

// PostStore is the persistence port for posts. SavePost persists the post
// row and any pending recommendations in one transaction (cascade-on-save).
type PostStore interface {
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	SearchPostsByTitle(ctx context.Context, keyword string) ([]*models.Post, error)
	SearchPostsByContent(ctx context.Context, keyword string) ([]*models.Post, error)
	SearchPostsByAuthorUsername(ctx context.Context, keyword string) ([]*models.Post, error)
	GetPostsByBoardCode(ctx context.Context, code string, order models.PostOrder) ([]*models.Post, error)
	GetPostsByAuthor(ctx context.Context, username string) ([]*models.Post, error)
	GetPostsCreatedBetween(ctx context.Context, start, end time.Time) ([]*models.Post, error)
	PostExists(ctx context.Context, id uuid.UUID) (bool, error)
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	IncrementPostViewCount(ctx context.Context, id uuid.UUID) (int, error)
	CountPosts(ctx context.Context) (int, error)
}

// RecommendationStore is the persistence port for post recommendations.
// Recommendations are written through SavePost; this port only reads.
type RecommendationStore interface {
	RecommendationExists(ctx context.Context, postID, memberID uuid.UUID) (bool, error)
	CountRecommendations(ctx context.Context, postID uuid.UUID) (int, error)
}

// Store is the full persistence surface consumed by the services and the
// server wiring, implemented by PostgresDB.
type Store interface {
	MemberStore
	BoardStore
	PostStore
	RecommendationStore

	Close(ctx context.Context) error
}
