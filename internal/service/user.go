package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aasthak07/QuillStack-AI/internal/auth"
	"github.com/Aasthak07/QuillStack-AI/internal/model"
	"github.com/Aasthak07/QuillStack-AI/internal/repository"
)

var (
	ErrMissingCredentials = errors.New("name, email and password are required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminRequired      = errors.New("admin privileges required")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResult pairs an issued token with its user.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AdminStats is the aggregate view shown on the admin dashboard.
type AdminStats struct {
	TotalUsers   int       `json:"totalUsers"`
	AdminUsers   int       `json:"adminUsers"`
	RegularUsers int       `json:"regularUsers"`
	StatsDate    time.Time `json:"statsDate"`
}

// UserUpdate carries a partial user update; nil fields are left unchanged.
type UserUpdate struct {
	Name    *string
	Email   *string
	IsAdmin *bool
}

// UserService defines account and admin use cases.
type UserService interface {
	// SignUp registers a new account and returns a signed token.
	SignUp(ctx context.Context, name, email, password string) (*AuthResult, error)

	// Login authenticates by email and password.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// AdminLogin authenticates and additionally requires the admin flag.
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)

	// IsAdmin reports whether the user currently holds the admin flag.
	IsAdmin(ctx context.Context, userID string) (bool, error)

	// Stats aggregates user counts for the admin dashboard.
	Stats(ctx context.Context) (*AdminStats, error)

	// ListUsers returns all users ordered by creation time.
	ListUsers(ctx context.Context) ([]model.User, error)

	// GetUser returns a single user by ID.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// UpdateUser applies a partial update to a user.
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*model.User, error)

	// DeleteUser removes a user account.
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) SignUp(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Issue(stored)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: stored}, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *userService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, ErrAdminRequired
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// authenticate looks the user up and checks the password. Missing users and
// bad passwords return the same error so the response does not reveal which
// emails are registered.
func (s *userService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, ErrUserNotFound
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *userService) Stats(ctx context.Context) (*AdminStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:   total,
		AdminUsers:   admins,
		RegularUsers: total - admins,
		StatsDate:    time.Now().UTC(),
	}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		user.Email = normalizeEmail(*upd.Email)
	}
	if upd.IsAdmin != nil {
		user.IsAdmin = *upd.IsAdmin
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
