package pagination_test

import (
	"testing"

	"github.com/frenchcert/frenchcert/pkg/pagination"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &pagination.Config{}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_PAGINATION_DEFAULT_PAGE_SIZE", "15")
	t.Setenv("TEST_PAGINATION_MAX_PAGE_SIZE", "75")

	cfg := &pagination.Config{}
	env := &pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGINATION_DEFAULT_PAGE_SIZE",
		MaxPageSize:     "TEST_PAGINATION_MAX_PAGE_SIZE",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultPageSize != 15 {
		t.Errorf("DefaultPageSize = %d, want 15", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 75 {
		t.Errorf("MaxPageSize = %d, want 75", cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_DefaultExceedsMax(t *testing.T) {
	cfg := &pagination.Config{DefaultPageSize: 60, MaxPageSize: 50}

	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() should fail when default_page_size exceeds max_page_size")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := pagination.Config{DefaultPageSize: 10, MaxPageSize: 100}
	base.Merge(&pagination.Config{MaxPageSize: 40})

	if base.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", base.DefaultPageSize)
	}
	if base.MaxPageSize != 40 {
		t.Errorf("MaxPageSize = %d, want 40", base.MaxPageSize)
	}
}
