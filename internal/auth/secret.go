package auth

import (
	"errors"

	"go.uber.org/zap"
)

// devFallbackSecret keeps local development usable when no real secret is
// configured. It is itself a placeholder and would be rejected in production.
const devFallbackSecret = "insecure-dev-secret-do-not-deploy"

// placeholderSecrets are documented insecure defaults that have shown up in
// env files and deployment templates. Matching is exact and case-sensitive.
var placeholderSecrets = []string{
	"change-me-in-production",
	"changeme",
	"dev-secret",
	"secret",
	devFallbackSecret,
}

// ErrWeakSecret indicates the configured signing secret is missing or one of
// the known placeholder values.
var ErrWeakSecret = errors.New("signing secret missing or placeholder")

// ProvisionSecret validates the configured signing secret once at startup.
// Every authentication guarantee downstream derives from this one value, so
// in production a missing or placeholder secret is a startup error: the
// process must not serve traffic. Outside production the same condition logs
// a warning and substitutes a fixed, clearly-insecure fallback.
func ProvisionSecret(configured string, production bool, logger *zap.Logger) (string, error) {
	if isPlaceholder(configured) {
		if production {
			return "", ErrWeakSecret
		}
		logger.Warn("AUTH_JWT_SECRET missing or placeholder; using insecure development fallback")
		return devFallbackSecret, nil
	}
	return configured, nil
}

func isPlaceholder(secret string) bool {
	if secret == "" {
		return true
	}
	for _, p := range placeholderSecrets {
		if secret == p {
			return true
		}
	}
	return false
}
