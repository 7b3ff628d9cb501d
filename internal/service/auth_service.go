package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"freefood/internal/auth"
	"freefood/internal/errors"
	"freefood/internal/model"
	"freefood/internal/repository"
)

const bcryptCost = 10

// AuthService handles signup and login. Both return a signed one-hour
// session token carrying the user's claim set.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, *model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Signup registers a new user and returns a session token. The duplicate
// check runs first; the existence check is best effort, so a concurrent
// signup racing past it is caught again by the unique index on email.
func (s *authService) Signup(ctx context.Context, name, email, password string) (string, *model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	if !strings.Contains(email, "@") {
		return "", nil, errors.NewValidationError("Must be a valid email address.")
	}
	if name == "" || email == "" || password == "" {
		return "", nil, errors.NewValidationError("Name, email, and password are required.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return "", nil, errors.ErrEmailTaken
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Name, user.Email, user.CanPostEvents, user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Login verifies credentials and returns a fresh session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.NewValidationError("Email and password are required!")
	}
	if !strings.Contains(email, "@") {
		return "", nil, errors.NewValidationError("Must be a valid email address.")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrWrongPassword
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Name, user.Email, user.CanPostEvents, user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}
