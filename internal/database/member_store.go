// internal/database/member_store.go
package database

import (
	"context"
	"database/sql"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
)

// GetMemberByID fetches a member by their ID.
func (p *PostgresDB) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	query := `SELECT id, username, password_hash, created_at, updated_at FROM members WHERE id = $1`
	var member models.Member
	err := p.DB.GetContext(ctx, &member, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewMemberNotFoundError("id " + id.String())
		}
		return nil, databaseError("failed to query member by id", err)
	}
	return &member, nil
}

// GetMemberByUsername fetches a member by their exact username.
func (p *PostgresDB) GetMemberByUsername(ctx context.Context, username string) (*models.Member, error) {
	query := `SELECT id, username, password_hash, created_at, updated_at FROM members WHERE username = $1`
	var member models.Member
	err := p.DB.GetContext(ctx, &member, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewMemberNotFoundError("username " + username)
		}
		return nil, databaseError("failed to query member by username", err)
	}
	return &member, nil
}

// SearchMembersByUsername fetches members whose username contains the
// keyword. No match is an empty slice, not an error.
func (p *PostgresDB) SearchMembersByUsername(ctx context.Context, keyword string) ([]*models.Member, error) {
	query := `SELECT id, username, password_hash, created_at, updated_at FROM members WHERE username LIKE '%' || $1 || '%' ORDER BY username`
	members := []*models.Member{}
	err := p.DB.SelectContext(ctx, &members, query, escapeLike(keyword))
	if err != nil {
		return nil, databaseError("failed to search members by username", err)
	}
	return members, nil
}

// MemberExists reports whether a member with the given ID exists.
func (p *PostgresDB) MemberExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := p.DB.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, id)
	if err != nil {
		return false, databaseError("failed to check member existence", err)
	}
	return exists, nil
}

// SaveMember inserts a new member or updates an existing one. The username
// unique constraint is translated into a duplicate-member error so the
// service-layer check stays a fast path, not the sole guarantee.
func (p *PostgresDB) SaveMember(ctx context.Context, member *models.Member) error {
	stampTimestamps(&member.Entity)

	query := `
		INSERT INTO members (id, username, password_hash, created_at, updated_at)
		VALUES (:id, :username, :password_hash, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			password_hash = EXCLUDED.password_hash,
			updated_at = EXCLUDED.updated_at
	`
	_, err := p.DB.NamedExecContext(ctx, query, member)
	if err != nil {
		if isUniqueViolation(err, "") {
			return utils.NewAppError(utils.ErrMemberAlreadyExists, "Already existing member with username: "+member.Username, err)
		}
		return databaseError("failed to save member", err)
	}
	return nil
}

// DeleteMember deletes a member by ID.
func (p *PostgresDB) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result, err := p.DB.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return databaseError("failed to delete member", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return databaseError("failed to get rows affected after delete", err)
	}
	if rowsAffected == 0 {
		return utils.NewMemberNotFoundError("id " + id.String())
	}
	return nil
}
