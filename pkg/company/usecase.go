package company

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes recruiter account registration and login.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password, image string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthResult struct {
	Company Company
	Token   string
}

type authService struct {
	repo   Repository
	tokens TokenGenerator
}

// NewAuthService returns the default implementation of AuthUseCase.
func NewAuthService(repo Repository, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, name, email, password, image string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	// If the account exists, fail fast (best-effort check; the unique index
	// on email is the real barrier)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	c := Company{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Image:        image,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, c)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Company: c, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	c, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, c)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Company: c, Token: token}, nil
}
