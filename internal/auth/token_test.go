package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/election-service/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	roles := []domain.Role{
		domain.RoleAdmin,
		domain.RoleEditor,
		domain.RoleViewer,
		domain.RoleVoter,
		domain.RoleCandidate,
	}

	for _, role := range roles {
		identity := domain.Identity{
			UserID: "user-42",
			Email:  "voter@example.com",
			Role:   role,
		}

		token, exp, err := tm.IssueToken(identity, 0)
		if err != nil {
			t.Fatalf("IssueToken(%s): %v", role, err)
		}
		if !exp.After(time.Now()) {
			t.Fatalf("IssueToken(%s): expiry %v not in the future", role, exp)
		}

		got, err := tm.VerifyToken(token)
		if err != nil {
			t.Fatalf("VerifyToken(%s): %v", role, err)
		}
		if *got != identity {
			t.Errorf("round trip for %s: got %+v, want %+v", role, *got, identity)
		}
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	issueTime := time.Now()
	tm.now = func() time.Time { return issueTime }

	identity := domain.Identity{UserID: "user-42", Role: domain.RoleViewer}
	token, _, err := tm.IssueToken(identity, time.Millisecond)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Still inside the validity window.
	if _, err := tm.VerifyToken(token); err != nil {
		t.Fatalf("VerifyToken before expiry: %v", err)
	}

	// Advance the clock well past the 1ms TTL plus any skew tolerance.
	tm.now = func() time.Time { return issueTime.Add(time.Minute) }
	if _, err := tm.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken after expiry: got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, _, err := issuer.IssueToken(domain.Identity{UserID: "user-42", Role: domain.RoleAdmin}, 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken with wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyFailuresAreUndifferentiated(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	issueTime := time.Now()
	tm.now = func() time.Time { return issueTime }
	expired, _, err := tm.IssueToken(domain.Identity{UserID: "user-42", Role: domain.RoleViewer}, time.Millisecond)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	tm.now = func() time.Time { return issueTime.Add(time.Hour) }

	other := NewTokenManager("another-secret", time.Hour)
	forged, _, err := other.IssueToken(domain.Identity{UserID: "user-42", Role: domain.RoleViewer}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong signature", forged},
		{"garbage", "not-a-token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.VerifyToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("got %v, want ErrInvalidToken", err)
			}
			// One message for every failure mode; callers must not be able
			// to tell signature failure from expiry.
			if err.Error() != ErrInvalidToken.Error() {
				t.Fatalf("error message leaks failure detail: %q", err.Error())
			}
		})
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	token, _, err := tm.IssueToken(domain.Identity{UserID: "user-42", Role: domain.Role("superuser")}, 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := tm.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken with unknown role: got %v, want ErrInvalidToken", err)
	}
}

func TestDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", 0)

	issueTime := time.Now()
	tm.now = func() time.Time { return issueTime }

	_, exp, err := tm.IssueToken(domain.Identity{UserID: "user-42", Role: domain.RoleViewer}, 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if want := issueTime.Add(24 * time.Hour); !exp.Equal(want) {
		t.Fatalf("default expiry: got %v, want %v", exp, want)
	}
}
