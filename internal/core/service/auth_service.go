package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigsly/gigsly-client/internal/api/metrics"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

const minPasswordLength = 8

// TokenClaims is the payload of tokens issued by AuthService. Subject holds
// the numeric user id.
type TokenClaims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the caller identity used by services.
func (c *TokenClaims) Actor() (ports.Actor, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return ports.Actor{}, fmt.Errorf("token subject %q: %w", c.Subject, domain.ErrUnauthorized)
	}
	return ports.Actor{UserID: id, Name: c.Name, Email: c.Email, Role: c.Role}, nil
}

// AuthService implements signup, login and token issuing for the dev backend.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Signup(ctx context.Context, in domain.SignupInput) (*domain.AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := validateSignup(in); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "invalid").Inc()
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	active, verified := true, false
	user := &domain.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Role:         in.Role,
		Active:       &active,
		Verified:     &verified,
		PasswordHash: string(hash),
		CreatedAt:    &now,
		UpdatedAt:    &now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
		}
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	return s.issue(created)
}

// Login never reveals whether the email exists: an unknown email and a wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListByRole lists accounts holding role, e.g. the professionals directory.
func (s *AuthService) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if !role.Valid() {
		return nil, domain.NewFieldError(map[string]string{"role": "Unknown role " + string(role)})
	}
	return s.repo.ListByRole(ctx, role)
}

// ParseToken verifies an HS256 token issued by this service.
func (s *AuthService) ParseToken(raw string) (*TokenClaims, error) {
	return ParseToken(raw, s.jwtSecret)
}

// ParseToken verifies raw against secret and returns its claims.
func ParseToken(raw, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("parse token: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) issue(user *domain.User) (*domain.AuthResult, error) {
	now := s.now().UTC()
	expires := now.Add(s.tokenTTL)

	claims := TokenClaims{
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.AuthResult{
		Token:     signed,
		TokenType: domain.DefaultTokenType,
		ExpiresAt: expires,
		User:      user,
	}, nil
}

func validateSignup(in domain.SignupInput) error {
	fields := map[string]string{}
	if in.FullName == "" {
		fields["fullName"] = "Full name is required"
	}
	if in.Email == "" {
		fields["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "Email must be valid"
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if in.Role != domain.RoleClient && in.Role != domain.RoleProfessional {
		fields["role"] = "Role must be CLIENT or PROFESSIONAL"
	}
	if len(fields) > 0 {
		return domain.NewFieldError(fields)
	}
	return nil
}
