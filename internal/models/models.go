package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity holds the fields shared by every persisted record: a generated
// identifier plus creation and modification timestamps. The storage layer
// sets CreatedAt once on first save and refreshes UpdatedAt on every
// mutating save.
type Entity struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewEntity returns an Entity with a freshly generated identifier.
// Timestamps are left zero so the store can stamp them on save.
func NewEntity() Entity {
	return Entity{ID: uuid.New()}
}
