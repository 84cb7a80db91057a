package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleCustomer     Role = "customer"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// User is an account. Email is stored in canonical form (see NormalizeEmail).
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI email-index: email
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Caller is the authenticated identity behind a request. A nil *Caller is a guest.
type Caller struct {
	UserID string
	Email  string
	Role   Role
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// Session binds an opaque token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// LoginCode is a single-use passwordless login code. Only its hash is stored.
type LoginCode struct {
	Email     string
	CodeHash  string
	Attempts  int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RoleChange is the audit record written for every role grant.
type RoleChange struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FromRole  Role      `json:"from_role"`
	ToRole    Role      `json:"to_role"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail is the canonical form used for every email comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
