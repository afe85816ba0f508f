package utils

import (
	"fmt"

	"github.com/google/uuid"
)

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"

	// Authentication/Authorization errors
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"

	// Member-specific errors
	ErrMemberNotFound      = "MEMBER_NOT_FOUND"
	ErrMemberAlreadyExists = "MEMBER_ALREADY_EXISTS"

	// Board/post-specific errors
	ErrBoardNotFound      = "BOARD_NOT_FOUND"
	ErrPostNotFound       = "POST_NOT_FOUND"
	ErrAlreadyRecommended = "ALREADY_RECOMMENDED"

	ErrDatabase = "DATABASE_ERROR"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// Specific error creators for common cases
func NewMemberNotFoundError(key string) *AppError {
	return &AppError{
		Code:    ErrMemberNotFound,
		Message: "Member not found: " + key,
	}
}

func NewDuplicateMemberError(username string) *AppError {
	return &AppError{
		Code:    ErrMemberAlreadyExists,
		Message: "Already existing member with username: " + username,
	}
}

func NewBoardNotFoundError(key string) *AppError {
	return &AppError{
		Code:    ErrBoardNotFound,
		Message: "Board not found: " + key,
	}
}

func NewPostNotFoundError(id uuid.UUID) *AppError {
	return &AppError{
		Code:    ErrPostNotFound,
		Message: "Post not found with id: " + id.String(),
	}
}

func NewAlreadyRecommendedError(postID, memberID uuid.UUID) *AppError {
	return &AppError{
		Code:    ErrAlreadyRecommended,
		Message: fmt.Sprintf("Member %s has already recommended post %s", memberID, postID),
	}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    ErrInvalidCredentials,
		Message: "Password not correct",
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound, ErrMemberNotFound, ErrBoardNotFound, ErrPostNotFound:
		return 404 // http.StatusNotFound
	case ErrInvalidInput, ErrInvalidCredentials:
		return 400 // http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidToken:
		return 401 // http.StatusUnauthorized
	case ErrDuplicate, ErrMemberAlreadyExists, ErrAlreadyRecommended:
		return 409 // http.StatusConflict
	case ErrDatabase:
		return 500 // http.StatusInternalServerError
	default:
		return 500 // http.StatusInternalServerError for unknown errors
	}
}
