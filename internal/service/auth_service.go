package service

import (
	"context"
	"strings"
	"time"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository"
	"eligue-assistance/internal/utils"
)

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

// Login succeeds iff exactly one user matches the login and the password
// verifies. Failure has no side effect.
func (a *AuthService) Login(ctx context.Context, login, password string) (token string, user *models.User, err error) {
	login = strings.TrimSpace(login)
	u, hash, err := a.users.GetByLogin(ctx, login)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Role, 24*time.Hour)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
