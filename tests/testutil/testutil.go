package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". Guards
// against suites that wire global state pointing a run at a development
// database.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("Tests must run with GO_ENV=test, got %q", env)
	}
}

// MustSetTestEnvironment sets GO_ENV=test for suite setup
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}
