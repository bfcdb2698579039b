package auth

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/mocks"
)

const testSecret = "test-secret"

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hashed)
}

func TestService_Login(t *testing.T) {
	user := &domain.User{
		ID:       "user-1",
		Email:    "ana@uni.edu",
		Password: hashPassword(t, "secreta123"),
		Role:     domain.UserRoleStudent,
	}
	repo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, errors.New("not found")
		},
	}
	service := NewService(repo, mocks.NewMockCache(), testSecret, zap.NewNop())

	access, refresh, err := service.Login(context.Background(), "ana@uni.edu", "secreta123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Error("expected both tokens")
	}

	if _, _, err := service.Login(context.Background(), "ana@uni.edu", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := service.Login(context.Background(), "nadie@uni.edu", "secreta123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestService_RegisterSetsDefaults(t *testing.T) {
	var saved *domain.User
	repo := &mocks.MockUserRepository{
		SaveFunc: func(ctx context.Context, user *domain.User) error {
			saved = user
			return nil
		},
	}
	service := NewService(repo, mocks.NewMockCache(), testSecret, zap.NewNop())

	user := &domain.User{Name: "Ana", Email: "ana@uni.edu", Password: "secreta123"}
	if err := service.Register(context.Background(), user); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if saved == nil {
		t.Fatal("user was not saved")
	}
	if saved.ID == "" {
		t.Error("no ID assigned")
	}
	if saved.Role != domain.UserRoleStudent {
		t.Errorf("role = %s, want student", saved.Role)
	}
	if saved.Password == "secreta123" {
		t.Error("password stored in plain text")
	}
	if !saved.Preferences.ScreenReaderEnabled {
		t.Error("screen reader not enabled by default")
	}
	if saved.Preferences.TTSSpeed != 1.0 {
		t.Errorf("default tts speed = %f", saved.Preferences.TTSSpeed)
	}
}

func TestService_RegisterRejectsTakenEmail(t *testing.T) {
	repo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email}, nil
		},
		SaveFunc: func(ctx context.Context, user *domain.User) error {
			t.Fatal("save should not be called for a taken email")
			return nil
		},
	}
	service := NewService(repo, mocks.NewMockCache(), testSecret, zap.NewNop())

	err := service.Register(context.Background(), &domain.User{Email: "ana@uni.edu", Password: "secreta123"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestService_ValidateToken(t *testing.T) {
	user := &domain.User{
		ID:       "user-1",
		Email:    "ana@uni.edu",
		Password: hashPassword(t, "secreta123"),
	}
	var lookups int
	repo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			lookups++
			if id == user.ID {
				return user, nil
			}
			return nil, nil
		},
	}
	service := NewService(repo, mocks.NewMockCache(), testSecret, zap.NewNop())

	access, _, err := service.Login(context.Background(), "ana@uni.edu", "secreta123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	got, err := service.ValidateToken(context.Background(), access)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("validated user = %s, want %s", got.ID, user.ID)
	}

	// Second validation is served from cache.
	if _, err := service.ValidateToken(context.Background(), access); err != nil {
		t.Fatalf("second ValidateToken failed: %v", err)
	}
	if lookups != 1 {
		t.Errorf("repository hit %d times, want 1", lookups)
	}

	if _, err := service.ValidateToken(context.Background(), "not-a-token"); err == nil {
		t.Error("expected error for a garbage token")
	}
}

func TestService_RefreshToken(t *testing.T) {
	user := &domain.User{
		ID:       "user-1",
		Email:    "ana@uni.edu",
		Password: hashPassword(t, "secreta123"),
	}
	repo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	service := NewService(repo, mocks.NewMockCache(), testSecret, zap.NewNop())

	access, refresh, err := service.Login(context.Background(), "ana@uni.edu", "secreta123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	newAccess, err := service.RefreshToken(context.Background(), refresh)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if newAccess == "" {
		t.Error("no access token returned")
	}

	// An access token must not pass as a refresh token.
	if _, err := service.RefreshToken(context.Background(), access); err == nil {
		t.Error("access token accepted as refresh token")
	}
}
