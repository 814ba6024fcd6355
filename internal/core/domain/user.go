package domain

import (
	"strings"
	"time"
)

// Role is the account class assigned by the backend at signup.
type Role string

const (
	RoleClient       Role = "CLIENT"
	RoleProfessional Role = "PROFESSIONAL"
	RoleAdmin        Role = "ADMIN"
)

// ParseRole normalises s into a known Role. Unknown values are returned as-is
// and satisfy no access rule.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid reports whether r is one of the roles the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProfessional, RoleAdmin:
		return true
	}
	return false
}

// User is the account record as exchanged with the backend. The client keeps a
// cached copy; every refresh replaces it in full.
type User struct {
	ID                int64      `json:"id"`
	FullName          string     `json:"fullName"`
	Email             string     `json:"email"`
	Mobile            string     `json:"mobile,omitempty"`
	Role              Role       `json:"role"`
	Verified          *bool      `json:"verified,omitempty"`
	Active            *bool      `json:"active,omitempty"`
	Bio               string     `json:"bio,omitempty"`
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty"`
	PrimaryCategory   string     `json:"primaryCategory,omitempty"`
	Skills            []string   `json:"skills,omitempty"`
	HourlyRate        *float64   `json:"hourlyRate,omitempty"`
	Location          string     `json:"location,omitempty"`
	AverageRating     *float64   `json:"averageRating,omitempty"`
	ReviewCount       *int       `json:"reviewCount,omitempty"`
	CompletedProjects *int       `json:"completedProjects,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`

	// PasswordHash only exists server side.
	PasswordHash string `json:"-"`
}

// IsProfessional reports whether the user holds the PROFESSIONAL role.
func (u *User) IsProfessional() bool {
	return u != nil && u.Role == RoleProfessional
}

// DefaultTokenType is used when the backend omits tokenType.
const DefaultTokenType = "Bearer"

// AuthResult is the body returned by /auth/login and /auth/signup.
type AuthResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
