package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrStudentIDTaken     = apperror.New(http.StatusConflict, "student id already registered")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
)

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	IsStaff      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	Profile      Profile
}

// Profile is the one-to-one extension record created at registration.
type Profile struct {
	StudentID  string
	Phone      string
	Department string
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	StudentID   string
	IsActive    *bool // nil means "not set"
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
