package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// AuthAPI implements ports.AuthAPI over the gateway client.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var errMalformedAuth = errors.New("gateway: auth response missing token or user")

// Login posts credentials to /auth/login. A rejected pair comes back as
// domain.ErrInvalidCredentials.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := a.client.postCredentials(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, classifyLogin(err)
	}
	return normalize(&res)
}

// Signup posts a new account to /auth/signup.
func (a *AuthAPI) Signup(ctx context.Context, input domain.SignupInput) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := a.client.postCredentials(ctx, "/auth/signup", input, &res); err != nil {
		return nil, classifySignup(err)
	}
	return normalize(&res)
}

// Me fetches the user owning the stored token.
func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := a.client.Get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	if u.ID == 0 && u.Email == "" {
		return nil, fmt.Errorf("gateway: empty user from /auth/me")
	}
	return &u, nil
}

func normalize(res *domain.AuthResult) (*domain.AuthResult, error) {
	if res.Token == "" || res.User == nil {
		return nil, errMalformedAuth
	}
	if res.TokenType == "" {
		res.TokenType = domain.DefaultTokenType
	}
	return res, nil
}

func classifyLogin(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusBadRequest:
		if len(apiErr.ValidationErrors) > 0 {
			return validationError(apiErr)
		}
		return fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}
	return err
}

func classifySignup(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusConflict:
		return fmt.Errorf("signup: %w", domain.ErrEmailAlreadyExists)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return validationError(apiErr)
	}
	return err
}

func validationError(apiErr *APIError) *domain.ValidationError {
	return &domain.ValidationError{Message: apiErr.Message, Messages: apiErr.FieldMessages(), Fields: apiErr.ValidationErrors}
}
