// internal/service/member_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemberRegistration(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	// Step 1: Register a new member
	member, err := svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "jinsoo", member.Username)
	assert.NotEqual(t, uuid.Nil, member.ID)

	// The stored password must be a hash, never the raw input
	assert.NotEqual(t, "password123", member.HashedPassword)
	assert.NotEmpty(t, member.HashedPassword)

	// Step 2: Registering the same username again fails
	_, err = svc.Register(ctx, "jinsoo", "otherpassword")
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberAlreadyExists))

	// Step 3: The first member is still intact
	found, err := svc.GetByUsername(ctx, "jinsoo")
	assert.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)
}

func TestMemberRegistrationValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	// Blank username
	_, err := svc.Register(ctx, "   ", "password123")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	// Password below the minimum length
	_, err = svc.Register(ctx, "jinsoo", "abc")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestMemberLookup(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	registered, err := svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)

	// Lookup by ID and by username find the same member
	byID, err := svc.GetByID(ctx, registered.ID)
	assert.NoError(t, err)
	assert.Equal(t, "jinsoo", byID.Username)

	byName, err := svc.GetByUsername(ctx, "jinsoo")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, byName.ID)

	// Unknown ID and username are not-found errors
	_, err = svc.GetByID(ctx, uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberNotFound))

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberNotFound))
}

func TestMemberSearch(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	_, err := svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)
	_, err = svc.Register(ctx, "jinwoo", "password123")
	assert.NoError(t, err)
	_, err = svc.Register(ctx, "minji", "password123")
	assert.NoError(t, err)

	// Partial match over usernames
	members, err := svc.SearchByUsername(ctx, "jin")
	assert.NoError(t, err)
	assert.Len(t, members, 2)

	// No match is an empty slice, not an error
	members, err = svc.SearchByUsername(ctx, "zzz")
	assert.NoError(t, err)
	assert.Empty(t, members)
}

func TestMemberUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	registered, err := svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)
	originalHash := registered.HashedPassword

	updated, err := svc.Update(ctx, registered.ID, "jinsoo2", "newpassword")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, updated.ID)
	assert.Equal(t, "jinsoo2", updated.Username)
	assert.NotEqual(t, originalHash, updated.HashedPassword)

	// The old username no longer resolves
	_, err = svc.GetByUsername(ctx, "jinsoo")
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberNotFound))

	// Updating a missing member is a not-found error
	_, err = svc.Update(ctx, uuid.New(), "ghost", "password123")
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberNotFound))
}

func TestMemberDeletion(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	registered, err := svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)

	// First delete succeeds
	err = svc.DeleteByID(ctx, registered.ID)
	assert.NoError(t, err)

	// Second delete of the same ID fails with not-found
	err = svc.DeleteByID(ctx, registered.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberNotFound))

	// The username is free again after deletion
	_, err = svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)
}

func TestMemberLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(database.NewMemoryStore())

	registered, err := svc.Register(ctx, "jinsoo", "password123")
	assert.NoError(t, err)

	// Correct credentials return the member
	member, err := svc.Login(ctx, "jinsoo", "password123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, member.ID)

	// Wrong password is an invalid-credentials error
	_, err = svc.Login(ctx, "jinsoo", "wrongpassword")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidCredentials))

	// Unknown username stays a distinct not-found error at this layer
	_, err = svc.Login(ctx, "nobody", "password123")
	assert.True(t, utils.IsErrorCode(err, utils.ErrMemberNotFound))
}
