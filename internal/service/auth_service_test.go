package service

import (
	"context"
	"errors"
	"testing"

	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository/memory"
	"eligue-assistance/internal/utils"
)

func TestLogin(t *testing.T) {
	store := memory.New(nil)
	users := memory.NewUserRepo(store)
	hash, err := utils.HashPassword("secret12")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	err = users.Create(context.Background(), &models.User{
		ID:       "u1",
		Login:    "jdupont",
		FullName: "Jean Dupont",
		Role:     models.RoleUser,
	}, hash)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc := NewAuthService(users, "test-secret")

	token, u, err := svc.Login(context.Background(), "jdupont", "secret12")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != "u1" || token == "" {
		t.Fatalf("login returned user %q, token %q", u.ID, token)
	}
	claims, err := utils.ParseJWT("test-secret", token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != models.RoleUser {
		t.Errorf("claims = %+v", claims)
	}

	cases := []struct {
		name, login, password string
	}{
		{"wrong password", "jdupont", "nope"},
		{"unknown login", "ghost", "secret12"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), tc.login, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
