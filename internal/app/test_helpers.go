package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/infinitytest/internal/environment"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Output and
// debug logs share the returned buffer.
func SetupAppTest(t *testing.T, appConfig *Config, loaders Loaders, env environment.Service) (*App, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(out, appConfig, loaders, env)

	t.Cleanup(func() {
		if os.Getenv("INFINITY_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	return testApp, out
}
