package infrastructure_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/infrastructure"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvServiceEnv, "")
	t.Setenv("API_BASE_URL", baseURL)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestStart_ProbesBackend(t *testing.T) {
	var path string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path + "?" + r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer backend.Close()

	logs := &syncBuffer{}
	infra, err := infrastructure.NewWithWriter(newConfig(t, backend.URL+"/api"), logs)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	if !infra.Lifecycle.Ready() {
		t.Error("Ready() = false after startup")
	}
	if path != "/api/fields?limit=1" {
		t.Errorf("probe = %q", path)
	}
	if !strings.Contains(logs.String(), "backend reachable") {
		t.Errorf("logs = %q", logs.String())
	}
}

func TestStart_UnreachableBackendIsNotFatal(t *testing.T) {
	logs := &syncBuffer{}
	infra, err := infrastructure.NewWithWriter(newConfig(t, "http://127.0.0.1:1/api"), logs)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	if !infra.Lifecycle.Ready() {
		t.Error("Ready() = false after startup")
	}
	if !strings.Contains(logs.String(), "backend unreachable") {
		t.Errorf("logs = %q", logs.String())
	}
}
