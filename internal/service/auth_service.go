package service

import (
	"context"
	"strings"

	"github.com/bar-comandas/web/internal/models"
)

// AuthService exchanges staff credentials for a backend token
type AuthService struct {
	api API
}

func NewAuthService(api API) *AuthService {
	return &AuthService{api: api}
}

// Login requires both fields and returns the backend's token and role.
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.LoginResponse, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, invalid("usuario", "Usuário é obrigatório")
	}
	if password == "" {
		return nil, invalid("senha", "Senha é obrigatória")
	}

	resp, err := s.api.Login(ctx, models.Credentials{Login: login, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrEmptyToken
	}
	return resp, nil
}
