package logging

import (
	"os"
	"testing"
)

// unsetEnv clears keys for the duration of the test. t.Setenv registers the
// restore, then the variable is removed.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
