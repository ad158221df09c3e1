package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"

	"go.uber.org/zap"
)

type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult — то, что отдаём клиенту после signup/login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Role      string
	Name      string
	Email     string
}

type AuthService struct {
	users     repository.UserRepo
	hasher    PasswordHasher
	tokens    TokenProvider
	accessTTL time.Duration
	now       func() time.Time
	log       *zap.Logger
}

func NewAuthService(users repository.UserRepo, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         models.RoleUser,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Гонка двух регистраций на один email: проверка выше прошла,
		// а вставка упёрлась в уникальный индекс.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.tokens.SignAccess(ctx, u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info("Зарегистрирован новый пользователь", zap.String("email", u.Email))

	return &AuthResult{
		Token:     token,
		ExpiresAt: exp,
		Role:      string(u.Role),
		Name:      u.Name,
		Email:     u.Email,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Enabled || !s.hasher.Compare(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.SignAccess(ctx, user.ID, string(user.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: exp,
		Role:      string(user.Role),
		Name:      user.Name,
		Email:     user.Email,
	}, nil
}
