// internal/service/post_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
)

// PostService handles post CRUD, listings and the recommendation workflow.
type PostService struct {
	posts           database.PostStore
	recommendations database.RecommendationStore
}

func NewPostService(posts database.PostStore, recommendations database.RecommendationStore) *PostService {
	return &PostService{posts: posts, recommendations: recommendations}
}

// Register stores a new post. Author and board are fixed at creation time;
// no duplicate check applies to posts.
func (s *PostService) Register(ctx context.Context, title, content string, authorID, boardID uuid.UUID) (*models.Post, error) {
	if err := validatePostFields(title, content); err != nil {
		return nil, err
	}
	if authorID == uuid.Nil || boardID == uuid.Nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "author and board are required", nil)
	}

	post := models.NewPost(title, content, authorID, boardID)
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID fetches a post by ID without touching its view count.
func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.posts.GetPost(ctx, id)
}

// View fetches a post for a detail view and increments its view count by
// exactly one. Every call increments, repeat views by the same member
// included.
func (s *PostService) View(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	viewCount, err := s.posts.IncrementPostViewCount(ctx, id)
	if err != nil {
		return nil, err
	}
	post.ViewCount = viewCount
	return post, nil
}

// SearchByTitle returns posts whose title contains the keyword.
func (s *PostService) SearchByTitle(ctx context.Context, keyword string) ([]*models.Post, error) {
	return s.posts.SearchPostsByTitle(ctx, keyword)
}

// SearchByContent returns posts whose content contains the keyword.
func (s *PostService) SearchByContent(ctx context.Context, keyword string) ([]*models.Post, error) {
	return s.posts.SearchPostsByContent(ctx, keyword)
}

// SearchByAuthorUsername returns posts whose author's username contains
// the keyword.
func (s *PostService) SearchByAuthorUsername(ctx context.Context, keyword string) ([]*models.Post, error) {
	return s.posts.SearchPostsByAuthorUsername(ctx, keyword)
}

// GetByBoardCode returns the posts of one board in the requested order.
func (s *PostService) GetByBoardCode(ctx context.Context, code string, order models.PostOrder) ([]*models.Post, error) {
	return s.posts.GetPostsByBoardCode(ctx, code, order)
}

// GetByAuthor returns a member's posts, newest first.
func (s *PostService) GetByAuthor(ctx context.Context, username string) ([]*models.Post, error) {
	return s.posts.GetPostsByAuthor(ctx, username)
}

// GetCreatedBetween returns posts created within [start, end].
func (s *PostService) GetCreatedBetween(ctx context.Context, start, end time.Time) ([]*models.Post, error) {
	return s.posts.GetPostsCreatedBetween(ctx, start, end)
}

// Update overwrites a post's title and content only. Author, board, view
// count and recommendations are immutable through this path.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, title, content string) (*models.Post, error) {
	if err := validatePostFields(title, content); err != nil {
		return nil, err
	}

	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.posts.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeleteByID deletes a post and, through the storage cascade, all of its
// recommendations. A second delete of the same ID fails with not-found.
func (s *PostService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	exists, err := s.posts.PostExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return utils.NewPostNotFoundError(id)
	}
	return s.posts.DeletePost(ctx, id)
}

// Recommend records that a member recommends a post. Each member may
// recommend a given post at most once:
//
//  1. the post is looked up (not-found if absent),
//  2. an existing (post, member) recommendation fails the call,
//  3. a new recommendation referencing the member by ID is appended to the
//     post — the member record itself is not loaded,
//  4. the post is saved; the store persists the appended recommendation in
//     the same transaction.
//
// The existence check is a fast path. Two concurrent calls for the same
// pair can both pass it; the storage unique constraint on
// (post_id, member_id) rejects the second insert and the store reports it
// as ALREADY_RECOMMENDED.
func (s *PostService) Recommend(ctx context.Context, postID, memberID uuid.UUID) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	exists, err := s.recommendations.RecommendationExists(ctx, postID, memberID)
	if err != nil {
		return err
	}
	if exists {
		return utils.NewAlreadyRecommendedError(postID, memberID)
	}

	post.AddRecommendation(models.NewPostRecommendation(post.ID, memberID))
	return s.posts.SavePost(ctx, post)
}

// RecommendationCount returns the number of stored recommendations for a
// post.
func (s *PostService) RecommendationCount(ctx context.Context, postID uuid.UUID) (int, error) {
	return s.recommendations.CountRecommendations(ctx, postID)
}

func validatePostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "title must not be blank", nil)
	}
	if strings.TrimSpace(content) == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "content must not be blank", nil)
	}
	return nil
}
