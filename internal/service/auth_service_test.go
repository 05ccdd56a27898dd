package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/domain"
	"github.com/spec-kit/election-service/internal/service"
)

// mockUserRepository implements repository.UserRepository for testing.
type mockUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	nextID  int
}

func newMockUserRepo() *mockUserRepository {
	return &mockUserRepository{byEmail: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.byEmail[user.Email] = &copied
	return nil
}

func (m *mockUserRepository) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, existing := range m.byEmail {
		if existing.ID == user.ID {
			copied := *user
			m.byEmail[email] = &copied
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestAuthService() (*service.AuthService, *auth.TokenManager, *mockUserRepository) {
	repo := newMockUserRepo()
	tokens := auth.NewTokenManager("service-test-secret", time.Hour)
	// Minimum bcrypt cost keeps the test fast.
	return service.NewAuthService(repo, tokens, 4), tokens, repo
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, tokens, _ := newTestAuthService()
	ctx := context.Background()

	user, token, exp, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "hunter2-but-longer")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != domain.RoleViewer {
		t.Fatalf("role = %s, want viewer on self-registration", user.Role)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry %v not in the future", exp)
	}

	identity, err := tokens.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if identity.UserID != user.ID || identity.Role != domain.RoleViewer {
		t.Fatalf("identity = %+v, want id %s role viewer", identity, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, _, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "hunter2-but-longer"); err != nil {
		t.Fatalf("first RegisterUser: %v", err)
	}
	if _, _, _, err := svc.RegisterUser(ctx, "Ada Again", "ada@example.com", "other-password"); err == nil {
		t.Fatal("second RegisterUser with same email should fail")
	}
}

func TestLogin(t *testing.T) {
	svc, tokens, _ := newTestAuthService()
	ctx := context.Background()

	registered, _, _, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "hunter2-but-longer")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		user, token, _, err := svc.LoginUser(ctx, "ada@example.com", "hunter2-but-longer")
		if err != nil {
			t.Fatalf("LoginUser: %v", err)
		}
		if user.ID != registered.ID {
			t.Fatalf("user id = %s, want %s", user.ID, registered.ID)
		}
		if _, err := tokens.VerifyToken(token); err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, _, err := svc.LoginUser(ctx, "ada@example.com", "wrong"); err == nil {
			t.Fatal("LoginUser with wrong password should fail")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, _, err := svc.LoginUser(ctx, "nobody@example.com", "hunter2-but-longer"); err == nil {
			t.Fatal("LoginUser with unknown email should fail")
		}
	})
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "original-password")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "new-password"); err == nil {
		t.Fatal("ChangePassword with wrong current password should fail")
	}
	if err := svc.ChangePassword(ctx, user.ID, "original-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, _, err := svc.LoginUser(ctx, "ada@example.com", "original-password"); err == nil {
		t.Fatal("old password should no longer work")
	}
	if _, _, _, err := svc.LoginUser(ctx, "ada@example.com", "new-password"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
