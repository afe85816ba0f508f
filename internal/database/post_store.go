// internal/database/post_store.go
package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
)

// postSelect joins author and board so listings carry the author's
// username and the board code without extra round trips.
const postSelect = `
	SELECT
		p.id, p.title, p.content, p.member_id, p.board_id, p.view_count,
		p.created_at, p.updated_at,
		m.username AS author_username,
		b.code AS board_code
	FROM posts p
	JOIN members m ON p.member_id = m.id
	JOIN boards b ON p.board_id = b.id
`

// GetPost fetches a post by its ID. Stored recommendations are not loaded;
// use CountRecommendations or RecommendationExists for those.
func (p *PostgresDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := postSelect + ` WHERE p.id = $1`
	var post models.Post
	err := p.DB.GetContext(ctx, &post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewPostNotFoundError(id)
		}
		return nil, databaseError("failed to query post by id", err)
	}
	return &post, nil
}

// SearchPostsByTitle fetches posts whose title contains the keyword.
func (p *PostgresDB) SearchPostsByTitle(ctx context.Context, keyword string) ([]*models.Post, error) {
	query := postSelect + ` WHERE p.title LIKE '%' || $1 || '%' ORDER BY p.created_at DESC`
	return p.selectPosts(ctx, query, escapeLike(keyword))
}

// SearchPostsByContent fetches posts whose content contains the keyword.
func (p *PostgresDB) SearchPostsByContent(ctx context.Context, keyword string) ([]*models.Post, error) {
	query := postSelect + ` WHERE p.content LIKE '%' || $1 || '%' ORDER BY p.created_at DESC`
	return p.selectPosts(ctx, query, escapeLike(keyword))
}

// SearchPostsByAuthorUsername fetches posts whose author's username
// contains the keyword.
func (p *PostgresDB) SearchPostsByAuthorUsername(ctx context.Context, keyword string) ([]*models.Post, error) {
	query := postSelect + ` WHERE m.username LIKE '%' || $1 || '%' ORDER BY p.created_at DESC`
	return p.selectPosts(ctx, query, escapeLike(keyword))
}

// GetPostsByBoardCode fetches the posts of one board in the requested
// order. The most-recommended ordering counts stored recommendation rows.
func (p *PostgresDB) GetPostsByBoardCode(ctx context.Context, code string, order models.PostOrder) ([]*models.Post, error) {
	var orderBy string
	switch order {
	case models.OrderOldest:
		orderBy = `p.created_at ASC`
	case models.OrderMostViewed:
		orderBy = `p.view_count DESC, p.created_at DESC`
	case models.OrderMostRecommends:
		orderBy = `(SELECT COUNT(*) FROM post_recommendations r WHERE r.post_id = p.id) DESC, p.created_at DESC`
	default:
		orderBy = `p.created_at DESC`
	}
	query := postSelect + ` WHERE b.code = $1 ORDER BY ` + orderBy
	return p.selectPosts(ctx, query, code)
}

// GetPostsByAuthor fetches a member's posts, newest first.
func (p *PostgresDB) GetPostsByAuthor(ctx context.Context, username string) ([]*models.Post, error) {
	query := postSelect + ` WHERE m.username = $1 ORDER BY p.created_at DESC`
	return p.selectPosts(ctx, query, username)
}

// GetPostsCreatedBetween fetches posts created within [start, end].
func (p *PostgresDB) GetPostsCreatedBetween(ctx context.Context, start, end time.Time) ([]*models.Post, error) {
	query := postSelect + ` WHERE p.created_at BETWEEN $1 AND $2 ORDER BY p.created_at DESC`
	return p.selectPosts(ctx, query, start, end)
}

func (p *PostgresDB) selectPosts(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := p.DB.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, databaseError("failed to query posts", err)
	}
	return posts, nil
}

// PostExists reports whether a post with the given ID exists.
func (p *PostgresDB) PostExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := p.DB.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id)
	if err != nil {
		return false, databaseError("failed to check post existence", err)
	}
	return exists, nil
}

// SavePost inserts a new post or updates an existing one, and persists any
// pending recommendations in the same transaction. Author, board and view
// count are never touched on conflict; the view count moves only through
// IncrementPostViewCount. A racing duplicate recommendation trips the
// (post_id, member_id) unique constraint and surfaces as
// ALREADY_RECOMMENDED, which closes the check-then-insert race at the
// storage level.
func (p *PostgresDB) SavePost(ctx context.Context, post *models.Post) error {
	tx, err := p.DB.BeginTxx(ctx, nil)
	if err != nil {
		return databaseError("failed to begin transaction for save post", err)
	}
	defer tx.Rollback() // Rollback is ignored if tx is committed.

	stampTimestamps(&post.Entity)

	postQuery := `
		INSERT INTO posts (id, title, content, member_id, board_id, view_count, created_at, updated_at)
		VALUES (:id, :title, :content, :member_id, :board_id, :view_count, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
	`
	_, err = tx.NamedExecContext(ctx, postQuery, post)
	if err != nil {
		return databaseError("failed to save post", err)
	}

	recQuery := `
		INSERT INTO post_recommendations (id, post_id, member_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	for _, rec := range post.Recommendations {
		if _, err := tx.ExecContext(ctx, recQuery, rec.ID, rec.PostID, rec.MemberID); err != nil {
			if isUniqueViolation(err, "") {
				return utils.NewAlreadyRecommendedError(rec.PostID, rec.MemberID)
			}
			return databaseError("failed to save post recommendation", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return databaseError("failed to commit save post transaction", err)
	}

	// Persisted; a later save must not insert them again.
	post.Recommendations = nil
	return nil
}

// DeletePost deletes a post by ID. The schema cascades the delete to the
// post's recommendations.
func (p *PostgresDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := p.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return databaseError("failed to delete post", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return databaseError("failed to get rows affected after delete", err)
	}
	if rowsAffected == 0 {
		return utils.NewPostNotFoundError(id)
	}
	return nil
}

// IncrementPostViewCount bumps a post's view count by exactly one and
// returns the new value. The increment happens in the database so
// concurrent views are never lost.
func (p *PostgresDB) IncrementPostViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	var viewCount int
	query := `UPDATE posts SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`
	err := p.DB.GetContext(ctx, &viewCount, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, utils.NewPostNotFoundError(id)
		}
		return 0, databaseError("failed to increment post view count", err)
	}
	return viewCount, nil
}

// CountPosts returns the number of post records.
func (p *PostgresDB) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := p.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, databaseError("failed to count posts", err)
	}
	return count, nil
}

// RecommendationExists reports whether the member has already recommended
// the post.
func (p *PostgresDB) RecommendationExists(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM post_recommendations WHERE post_id = $1 AND member_id = $2)`
	err := p.DB.GetContext(ctx, &exists, query, postID, memberID)
	if err != nil {
		return false, databaseError("failed to check recommendation existence", err)
	}
	return exists, nil
}

// CountRecommendations returns the number of recommendations stored for a
// post.
func (p *PostgresDB) CountRecommendations(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM post_recommendations WHERE post_id = $1`
	err := p.DB.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, databaseError("failed to count recommendations", err)
	}
	return count, nil
}
