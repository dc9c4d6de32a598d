// Package user defines the user domain model for authentication and authorization.
package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/rentora/rentora/internal/domain"
)

// Role represents what a user may do on the marketplace.
type Role string

const (
	// RoleTenant users create rental requests and shortlist properties.
	RoleTenant Role = "tenant"
	// RoleLandlord users own properties and approve/reject requests on them.
	RoleLandlord Role = "landlord"
)

// ValidRoles is the set of all valid user roles.
var ValidRoles = map[Role]bool{
	RoleTenant:   true,
	RoleLandlord: true,
}

// User represents a registered user. The role is immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the credential-free projection of a User, safe to attach to
// other entities in API responses.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile returns the user with credential fields stripped.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterRequest is the input for registering a new user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}

// Validate checks that the RegisterRequest has all required fields.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email format: %w", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if !ValidRoles[r.Role] {
		return fmt.Errorf("invalid role: must be tenant or landlord: %w", domain.ErrValidation)
	}
	return nil
}

// LoginRequest is the input for user authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	return nil
}

// AuthResponse is returned after successful registration or login.
type AuthResponse struct {
	Token string  `json:"token"` //nolint:gosec // response field, not a hardcoded secret
	User  Profile `json:"user"`
}

// Claims contains the bearer token payload fields.
type Claims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
