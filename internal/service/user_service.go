package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"

	"github.com/google/uuid"
)

type UserPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Role    *string
	Enabled *bool
}

// UserService — административное управление пользователями.
type UserService struct {
	users repository.UserRepo
	now   func() time.Time
}

func NewUserService(users repository.UserRepo) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UserCount(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if !strings.EqualFold(email, u.Email) {
			exists, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailTaken
			}
		}
		fields["email"] = email
	}
	if patch.Phone != nil {
		fields["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if patch.Role != nil {
		role := models.Role(*patch.Role)
		if role != models.RoleUser && role != models.RoleAdmin {
			return nil, ErrInvalidRole
		}
		fields["role"] = role
	}
	if patch.Enabled != nil {
		fields["enabled"] = *patch.Enabled
	}
	if len(fields) == 0 {
		return u, nil
	}
	fields["updated_at"] = s.now()

	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
