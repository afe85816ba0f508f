// internal/database/postgres.go
package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresDB represents a PostgreSQL database connection
type PostgresDB struct {
	DB *sqlx.DB
}

var _ Store = (*PostgresDB)(nil)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Ping the database to verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL!")

	return &PostgresDB{
		DB: db,
	}, nil
}

// Close closes the database connection
func (p *PostgresDB) Close(ctx context.Context) error {
	log.Println("Closing PostgreSQL connection...")
	return p.DB.Close()
}

// InitializeTables creates all necessary tables if they don't exist.
// The unique constraints here are the authoritative guards: username
// uniqueness and the (post_id, member_id) recommendation pair are enforced
// at the storage level so concurrent check-then-insert races cannot slip a
// duplicate row past the service-layer existence checks.
func (p *PostgresDB) InitializeTables(ctx context.Context) error {
	// Members table
	_, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS members (
			id UUID PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create members table: %v", err)
	}

	// Boards table
	_, err = p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boards (
			id UUID PRIMARY KEY,
			code VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(100) UNIQUE NOT NULL,
			description VARCHAR(500),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create boards table: %v", err)
	}

	// Posts table
	_, err = p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY,
			title VARCHAR(300) NOT NULL,
			content TEXT NOT NULL,
			member_id UUID REFERENCES members(id) NOT NULL,
			board_id UUID REFERENCES boards(id) NOT NULL,
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create posts table: %v", err)
	}

	// Post recommendations table. ON DELETE CASCADE removes a post's
	// recommendations with the post; members are referenced, not owned.
	_, err = p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS post_recommendations (
			id UUID PRIMARY KEY,
			post_id UUID REFERENCES posts(id) ON DELETE CASCADE NOT NULL,
			member_id UUID REFERENCES members(id) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE(post_id, member_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create post_recommendations table: %v", err)
	}

	return nil
}

// SeedBoards creates the default introduction boards on first startup.
// Existing data is left untouched.
func (p *PostgresDB) SeedBoards(ctx context.Context) error {
	count, err := p.CountBoards(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	boards := []*models.Board{
		models.NewBoard("male", "자기소개(남)", "남자가 본인을 소개하는 게시판"),
		models.NewBoard("female", "자기소개(여)", "여자가 본인을 소개하는 게시판"),
	}
	for _, board := range boards {
		if err := p.CreateBoard(ctx, board); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d default boards", len(boards))
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation, optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code.Name() != "unique_violation" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// stampTimestamps sets UpdatedAt to now and backfills CreatedAt on first
// save. CreatedAt is never rewritten once set.
func stampTimestamps(e *models.Entity) {
	now := time.Now()
	e.UpdatedAt = now
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
}

// databaseError wraps an unexpected storage failure.
func databaseError(message string, err error) *utils.AppError {
	return utils.NewAppError(utils.ErrDatabase, message, err)
}

// escapeLike escapes LIKE metacharacters so search keywords match
// literally.
func escapeLike(keyword string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(keyword)
}
