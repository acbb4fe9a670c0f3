// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"time"
)

// Role is a member of the closed set of user roles.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

// DefaultRole is assigned when registration does not name a role.
const DefaultRole = RoleStudent

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleTeacher}

// ParseRole validates s against the role enumeration.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r belongs to the enumeration.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User is the stored credential record. PasswordHash never leaves the
// server: it has no JSON representation and PublicUser omits it.
type User struct {
	ID           int64
	Email        string
	PasswordHash string `json:"-"`
	FullName     *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward view of a User.
type PublicUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"fullName,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
