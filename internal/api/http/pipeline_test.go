package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/election-service/internal/api/http"
	"github.com/spec-kit/election-service/internal/audit"
	"github.com/spec-kit/election-service/internal/auth"
	"github.com/spec-kit/election-service/internal/domain"
)

type memorySink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	got     chan struct{}
}

func newMemorySink() *memorySink {
	return &memorySink{got: make(chan struct{}, 64)}
}

func (s *memorySink) Record(_ context.Context, entry *domain.AuditEntry) error {
	s.mu.Lock()
	s.entries = append(s.entries, *entry)
	s.mu.Unlock()
	s.got <- struct{}{}
	return nil
}

func (s *memorySink) wait(t *testing.T) domain.AuditEntry {
	t.Helper()
	select {
	case <-s.got:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit entry")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

type pipelineFixture struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	sink     *memorySink
	recorder *audit.Recorder
}

// newPipelineFixture builds a fiber app with the production middleware
// chain: audit recorder, error handling, identity guard, role gates.
func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	logger := zap.NewNop()
	tokens := auth.NewTokenManager("pipeline-test-secret", time.Hour)
	sink := newMemorySink()
	recorder := audit.NewRecorder(sink, logger, 64)
	t.Cleanup(func() { recorder.Close(time.Second) })

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, recorder, 5*time.Second)

	guard := auth.NewMiddleware(tokens, logger)

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	protected := app.Group("", guard.Handle)
	protected.Get("/whoami", func(c *fiber.Ctx) error {
		identity, _ := auth.IdentityFromContext(c)
		return c.JSON(fiber.Map{"user_id": identity.UserID, "role": identity.Role})
	})
	protected.Get("/admin-only", auth.Require(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("granted")
	})

	// Misconfigured on purpose: role gate without the identity guard.
	app.Get("/gate-without-guard", auth.Require(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("unreachable")
	})

	return &pipelineFixture{app: app, tokens: tokens, sink: sink, recorder: recorder}
}

func (f *pipelineFixture) tokenFor(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	token, _, err := f.tokens.IssueToken(domain.Identity{UserID: userID, Role: role}, 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

func errorBody(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error == "" {
		t.Fatal("error body missing error message")
	}
	return payload.Error
}

func TestIdentityGuardRejections(t *testing.T) {
	f := newPipelineFixture(t)
	validToken := f.tokenFor(t, "user-1", domain.RoleViewer)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme with valid token", "Token " + validToken},
		{"lowercase scheme", "bearer " + validToken},
		{"scheme only", "Bearer"},
		{"invalid token", "Bearer abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := f.app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
			errorBody(t, resp.Body)
		})
	}
}

func TestIdentityGuardAttachesIdentity(t *testing.T) {
	f := newPipelineFixture(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, "user-7", domain.RoleEditor))

	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.UserID != "user-7" || payload.Role != "editor" {
		t.Fatalf("identity = %+v, want user-7/editor", payload)
	}
}

func TestRoleGate(t *testing.T) {
	f := newPipelineFixture(t)

	tests := []struct {
		name       string
		role       domain.Role
		wantStatus int
	}{
		{"viewer is forbidden", domain.RoleViewer, fiber.StatusForbidden},
		{"voter is forbidden", domain.RoleVoter, fiber.StatusForbidden},
		{"admin is allowed", domain.RoleAdmin, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, "user-1", tt.role))

			resp, err := f.app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != fiber.StatusOK {
				errorBody(t, resp.Body)
			}
		})
	}
}

func TestRoleGateWithoutGuardRejectsAsUnauthenticated(t *testing.T) {
	f := newPipelineFixture(t)

	resp, err := f.app.Test(httptest.NewRequest("GET", "/gate-without-guard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuditEntryCarriesIdentityAndStatus(t *testing.T) {
	f := newPipelineFixture(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, "user-9", domain.RoleViewer))

	if _, err := f.app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	entry := f.sink.wait(t)
	if entry.Endpoint != "/whoami" {
		t.Errorf("endpoint = %q, want /whoami", entry.Endpoint)
	}
	if entry.UserID == nil || *entry.UserID != "user-9" {
		t.Errorf("user id = %v, want user-9", entry.UserID)
	}
	if entry.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", entry.StatusCode)
	}
}

func TestAuditEntryForRejectedRequestHasNoUser(t *testing.T) {
	f := newPipelineFixture(t)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	if _, err := f.app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	entry := f.sink.wait(t)
	if entry.UserID != nil {
		t.Errorf("user id = %v, want nil for rejected request", *entry.UserID)
	}
	if entry.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", entry.StatusCode)
	}
}

func TestConcurrentRequestsSeeOnlyTheirOwnIdentity(t *testing.T) {
	f := newPipelineFixture(t)

	const workers = 16
	const iterations = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers*iterations)

	for w := 0; w < workers; w++ {
		userID := fmt.Sprintf("user-%d", w)
		token := f.tokenFor(t, userID, domain.RoleViewer)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				req := httptest.NewRequest("GET", "/whoami", nil)
				req.Header.Set("Authorization", "Bearer "+token)

				resp, err := f.app.Test(req)
				if err != nil {
					errs <- fmt.Errorf("%s: %v", userID, err)
					return
				}

				var payload struct {
					UserID string `json:"user_id"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
					errs <- fmt.Errorf("%s: decode: %v", userID, err)
					return
				}
				if payload.UserID != userID {
					errs <- fmt.Errorf("identity leaked: sent %s, got %s", userID, payload.UserID)
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
