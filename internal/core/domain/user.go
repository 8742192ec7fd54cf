package domain

import (
	"errors"
	"time"
)

// Role values form a closed set. There is no implied hierarchy: every
// protected route enumerates the roles it accepts.
const (
	RoleStandard  = "standard"
	RoleAdmin     = "admin"
	RoleFullAdmin = "full-admin"
)

var ErrMissingFields = errors.New("missing required fields")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrNoToken = errors.New("no token provided")
var ErrInvalidToken = errors.New("invalid token")
var ErrStaleToken = errors.New("token is invalid or expired")
var ErrForbidden = errors.New("access forbidden")

// User models an account holder. CurrentToken holds the only session token
// honoured for this user: issuing a new one supersedes it, logout clears it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CurrentToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
