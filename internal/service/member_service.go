// internal/service/member_service.go
package service

import (
	"context"
	"strings"

	"github.com/HY-spring-study/OJT-jinsoo/internal/database"
	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
)

// MemberService handles member registration, lookup, update, deletion and
// login. Passwords never reach the store in the clear; registration and
// update hash them with bcrypt and login compares against the hash.
type MemberService struct {
	members database.MemberStore
}

func NewMemberService(members database.MemberStore) *MemberService {
	return &MemberService{members: members}
}

// Register stores a new member after checking the username is free.
// The service-level duplicate check gives the caller a precise error; the
// storage-level unique constraint on username remains the authoritative
// guard under concurrency.
func (s *MemberService) Register(ctx context.Context, username, password string) (*models.Member, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	if err := s.validateDuplicateMember(ctx, username); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "failed to hash password", err)
	}

	member := models.NewMember(username, hashed)
	if err := s.members.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID fetches a member by ID.
func (s *MemberService) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return s.members.GetMemberByID(ctx, id)
}

// GetByUsername fetches a member by exact username.
func (s *MemberService) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	return s.members.GetMemberByUsername(ctx, username)
}

// SearchByUsername returns members whose username contains the keyword.
// No match yields an empty slice, not an error.
func (s *MemberService) SearchByUsername(ctx context.Context, keyword string) ([]*models.Member, error) {
	return s.members.SearchMembersByUsername(ctx, keyword)
}

// Update overwrites a member's username and password only and refreshes
// the modification timestamp.
func (s *MemberService) Update(ctx context.Context, id uuid.UUID, username, password string) (*models.Member, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	member, err := s.members.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrInvalidInput, "failed to hash password", err)
	}

	member.Username = username
	member.HashedPassword = hashed
	if err := s.members.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteByID deletes a member. The existence check makes a repeated delete
// fail with a not-found error instead of silently succeeding.
func (s *MemberService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	exists, err := s.members.MemberExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return utils.NewMemberNotFoundError("id " + id.String())
	}
	return s.members.DeleteMember(ctx, id)
}

// Login fetches the member by username and verifies the password. An
// unknown username and a wrong password stay distinct conditions here;
// the transport layer collapses them into one generic message.
func (s *MemberService) Login(ctx context.Context, username, password string) (*models.Member, error) {
	member, err := s.members.GetMemberByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(member.HashedPassword, password) {
		return nil, utils.NewInvalidCredentialsError()
	}
	return member, nil
}

// validateDuplicateMember fails when the username is already taken.
func (s *MemberService) validateDuplicateMember(ctx context.Context, username string) error {
	_, err := s.members.GetMemberByUsername(ctx, username)
	if err == nil {
		return utils.NewDuplicateMemberError(username)
	}
	if utils.IsErrorCode(err, utils.ErrMemberNotFound) {
		return nil
	}
	return err
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "username must not be blank", nil)
	}
	if len(password) < models.MinPasswordLength {
		return utils.NewAppError(utils.ErrInvalidInput, "password must be at least 4 characters", nil)
	}
	return nil
}
