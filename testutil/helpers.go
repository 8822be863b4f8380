package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"
	"time"
)

func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}

	return hex.EncodeToString(bytes)[:length]
}

func Eventually(t *testing.T, condition func() bool, timeout time.Duration, interval time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}

		time.Sleep(interval)
	}

	t.Fatal("Condition not met within timeout")
}

func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping test in short mode")
	}
}

func RequireEnv(t *testing.T, key string) string {
	t.Helper()

	value := os.Getenv(key)

	if value == "" {
		t.Skipf("Environment variable %s is required but not set", key)
	}

	return value
}
