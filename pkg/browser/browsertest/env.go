package browsertest

import (
	"os"
	"testing"
)

// E2EEnvVar enables tests that drive a real browser.
const E2EEnvVar = "PAGECHECK_E2E"

// RequireE2E skips t unless real-browser tests are enabled.
func RequireE2E(t testing.TB) {
	t.Helper()
	if os.Getenv(E2EEnvVar) == "" {
		t.Skipf("set %s=1 to run tests against a real browser", E2EEnvVar)
	}
}
