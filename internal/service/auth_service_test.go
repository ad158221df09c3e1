package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"
	"github.com/zemenu6/dbrand-backend/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Моки для всех зависимостей AuthService

// MockUserRepo
type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, u *models.User) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ListFunc          func(ctx context.Context) ([]models.User, error)
	UpdateFieldsFunc  func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) (bool, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.User{}, nil
}

func (m *MockUserRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockPasswordHasher
type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

// MockTokenProvider
type MockTokenProvider struct {
	SignAccessFunc             func(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
	ParseAndValidateAccessFunc func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, sub, role, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseAndValidateAccessFunc != nil {
		return m.ParseAndValidateAccessFunc(ctx, token)
	}
	return &service.Claims{
		UserID: uuid.New(),
		Role:   string(models.RoleUser),
		Exp:    time.Now().Add(time.Hour),
	}, nil
}

func newAuthService(users *MockUserRepo) *service.AuthService {
	return service.NewAuthService(users, &MockPasswordHasher{}, &MockTokenProvider{}, time.Hour, zap.NewNop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	var created *models.User
	users := &MockUserRepo{
		CreateFunc: func(ctx context.Context, u *models.User) error {
			u.ID = uuid.New()
			created = u
			return nil
		},
	}
	svc := newAuthService(users)

	res, err := svc.Signup(context.Background(), service.SignupInput{
		Name:     "Ivan",
		Email:    "  Ivan@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}
	if created.Email != "ivan@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.Role != models.RoleUser {
		t.Fatalf("new user must get USER role, got %q", created.Role)
	}
	if created.PasswordHash != "hashed_secret123" {
		t.Fatalf("password not hashed: %q", created.PasswordHash)
	}
	if !created.Enabled {
		t.Fatal("new user must be enabled")
	}
	if res.Token != "access_token" || res.Role != string(models.RoleUser) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	users := &MockUserRepo{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
		CreateFunc: func(ctx context.Context, u *models.User) error {
			t.Fatal("Create must not be called for taken email")
			return nil
		},
	}
	svc := newAuthService(users)

	_, err := svc.Signup(context.Background(), service.SignupInput{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Signup_EmailTakenRace(t *testing.T) {
	// Проверка ExistsByEmail прошла, но параллельная регистрация успела
	// первой: вставка упирается в уникальный индекс и это всё равно 409.
	users := &MockUserRepo{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, u *models.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := newAuthService(users)

	_, err := svc.Signup(context.Background(), service.SignupInput{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	uid := uuid.New()
	users := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:           uid,
				Email:        email,
				PasswordHash: "hashed_secret123",
				Role:         models.RoleAdmin,
				Enabled:      true,
			}, nil
		},
	}
	svc := newAuthService(users)

	res, err := svc.Login(context.Background(), service.LoginInput{Email: "a@b.c", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Role != string(models.RoleAdmin) {
		t.Fatalf("role mismatch: %+v", res)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{PasswordHash: "hashed_other", Enabled: true}, nil
		},
	}
	svc := newAuthService(users)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "a@b.c", Password: "secret123"})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownOrDisabled(t *testing.T) {
	svc := newAuthService(&MockUserRepo{})
	if _, err := svc.Login(context.Background(), service.LoginInput{Email: "no@b.c", Password: "x"}); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}

	disabled := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{PasswordHash: "hashed_x", Enabled: false}, nil
		},
	}
	svc = newAuthService(disabled)
	if _, err := svc.Login(context.Background(), service.LoginInput{Email: "a@b.c", Password: "x"}); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("disabled user: want ErrInvalidCredentials, got %v", err)
	}
}
