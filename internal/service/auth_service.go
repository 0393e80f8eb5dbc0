package service

import (
	"context"
	"errors"
	"strings"

	"tienda/internal/auth"
	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"

	"gorm.io/gorm"
)

// AuthService handles registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uint) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo   repository.UsuarioRepository
	tokens *auth.TokenIssuer
}

func NewAuthService(repo repository.UsuarioRepository, tokens *auth.TokenIssuer) AuthService {
	return &authService{repo: repo, tokens: tokens}
}

func mapUsuario(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:     u.ID,
		Email:  u.Email,
		Nombre: u.Nombre,
		Rol:    auth.APIRole(u.Rol),
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, salt, err := auth.HashPassword(req.Password, nil)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Email:        email,
		Nombre:       req.Nombre,
		PasswordHash: hash,
		Salt:         salt,
		Rol:          auth.DBRole(auth.RoleUser),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index is the authority — a concurrent register can slip
		// past the pre-check and land here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailRegistrado
		}
		return nil, err
	}
	return mapUsuario(user), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash, user.Salt) {
		return nil, ErrCredencialesInvalidas
	}
	if user.PasswordResetRequired {
		return nil, ErrResetRequerido
	}

	token, err := s.tokens.Issue(user.ID, user.Email, auth.APIRole(user.Rol))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.tokens.ExpiresIn(),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return mapUsuario(user), nil
}
