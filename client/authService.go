package client

import (
	"context"
	"errors"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oren0115/ecommerce-sub000/models"
)

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login authenticates against the backend and populates both session slots.
// Some backend versions return only the token; the profile is then recovered
// from the token claims so the session is never half-populated.
func (c *Client) Login(ctx context.Context, identifier, password string) (*models.Session, error) {
	loginData := models.LoginData{Identifier: identifier, Password: password}
	if err := c.validateInput(loginData); err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := c.post(ctx, "/api/auth/login", loginData, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response did not include a token")
	}

	user := resp.User
	if user == nil {
		var err error
		user, err = userFromToken(resp.Token)
		if err != nil {
			return nil, err
		}
	}

	if err := c.store.Set(resp.Token, user); err != nil {
		return nil, err
	}
	c.redirecting.Store(false)
	return &models.Session{Token: resp.Token, User: user}, nil
}

// Signup registers a new account. The account must be activated via the
// emailed link before it can log in.
func (c *Client) Signup(ctx context.Context, signUpData models.SignupData) (string, error) {
	if err := c.validateInput(signUpData); err != nil {
		return "", err
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/api/auth/signup", signUpData, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ActivateAccount redeems the emailed activation token.
func (c *Client) ActivateAccount(ctx context.Context, activationToken string) error {
	if activationToken == "" {
		return &ValidationError{Message: "activation token is required"}
	}
	return c.post(ctx, "/api/auth/verify-email/"+url.PathEscape(activationToken), nil, nil)
}

// ForgotPassword asks the backend to mail a password reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: email}
	if err := c.validateInput(body); err != nil {
		return err
	}
	return c.post(ctx, "/api/auth/forgot-password", body, nil)
}

// ResetPassword sets a new password using an emailed reset token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	if resetToken == "" {
		return &ValidationError{Message: "reset token is required"}
	}
	body := struct {
		Password string `json:"password" validate:"required,min=8"`
	}{Password: password}
	if err := c.validateInput(body); err != nil {
		return err
	}
	return c.post(ctx, "/api/auth/reset-password/"+url.PathEscape(resetToken), body, nil)
}

// Logout discards the local session. There is no server-side session to
// invalidate; the token simply stops being sent.
func (c *Client) Logout() error {
	c.redirecting.Store(false)
	return c.store.Clear()
}

// Health probes the unauthenticated health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// userFromToken rebuilds the profile from the token's claims. The token is
// not verified here; the server is the authority and rejects forgeries with
// a 401 on first use.
func userFromToken(raw string) (*models.User, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, errors.New("login token is not a valid JWT")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("login token carries no claims")
	}

	user := &models.User{}
	if id, ok := claims["user_id"].(float64); ok {
		user.ID = int(id)
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	if user.ID == 0 && user.Email == "" && user.Username == "" {
		return nil, errors.New("login token claims carry no profile")
	}
	return user, nil
}
