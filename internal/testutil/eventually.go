package testutil

import (
	"fmt"
	"testing"
	"time"
)

// Eventually polls fn until it returns true, failing the test with the
// formatted message when timeout elapses first.
func Eventually(t testing.TB, timeout, interval time.Duration, fn func() bool, format string, args ...interface{}) {
	t.Helper()
	deadline := time.After(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if fn() {
			return
		}
		select {
		case <-deadline:
			msg := fmt.Sprintf(format, args...)
			if msg == "" {
				msg = "condition not met before timeout"
			}
			t.Fatalf("%s", msg)
		case <-ticker.C:
		}
	}
}
