package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleClient     = 3
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	Workspaces   []string  `json:"workspaces"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	UserID         int
	UserName       string
	UserEmail      string
	UserRoleID     int
	UserWorkspaces []string
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.UserRoleID == RoleAdmin
}
