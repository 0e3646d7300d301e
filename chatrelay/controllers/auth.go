package controllers

import (
	"context"

	"chatrelay/chatrelay/sources/psql/models"
)

// UserStore is the user DAO surface the auth controller needs.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, username string) (*models.User, error)
}

type AuthController struct {
	users UserStore
}

func NewAuthController(users UserStore) *AuthController {
	return &AuthController{users: users}
}

// Login is identification, not authentication: the username is upserted
// and the row returned. No credentials, no tokens.
func (c *AuthController) Login(ctx context.Context, username string) (*models.User, error) {
	return c.users.GetOrCreateUser(ctx, username)
}
