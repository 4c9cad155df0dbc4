package config

import (
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	if got := getenv("TEST_VAR", "def"); got != "value" {
		t.Errorf("getenv() = %q, want %q", got, "value")
	}
	if got := getenv("TEST_VAR_MISSING", "def"); got != "def" {
		t.Errorf("getenv() = %q, want default", got)
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{name: "true", value: "true", def: false, want: true},
		{name: "false", value: "false", def: true, want: false},
		{name: "numeric", value: "1", def: false, want: true},
		{name: "invalid falls back", value: "yep", def: true, want: true},
		{name: "unset falls back", value: "", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_BOOL", tt.value)
			}
			if got := mustBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("mustBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "150ms")
	if got := mustDuration("TEST_DUR", time.Second); got != 150*time.Millisecond {
		t.Errorf("mustDuration() = %v, want 150ms", got)
	}
	t.Setenv("TEST_DUR", "nonsense")
	if got := mustDuration("TEST_DUR", time.Second); got != time.Second {
		t.Errorf("mustDuration() on invalid value = %v, want default", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "simple", input: "a,b", want: []string{"a", "b"}},
		{name: "spaces and quotes", input: ` "a" , 'b' ,, c `, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBackendDetection(t *testing.T) {
	tests := []struct {
		name      string
		storage   string
		redisAddr string
		want      string
	}{
		{name: "explicit file wins", storage: BackendFile, redisAddr: "localhost:6379", want: BackendFile},
		{name: "explicit redis", storage: BackendRedis, redisAddr: "localhost:6379", want: BackendRedis},
		{name: "redis addr implies redis", storage: "", redisAddr: "localhost:6379", want: BackendRedis},
		{name: "no redis addr implies file", storage: "", redisAddr: "", want: BackendFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Storage: tt.storage, RedisAddr: tt.redisAddr}
			if got := cfg.Backend(); got != tt.want {
				t.Errorf("Backend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadInvalidStoragePanics(t *testing.T) {
	t.Setenv("BLOG_STORAGE", "postgres")
	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic on unknown storage backend")
		}
	}()
	Load()
}

func TestHasAdminCredentials(t *testing.T) {
	if (&Config{}).HasAdminCredentials() {
		t.Error("empty config should have no credentials")
	}
	if !(&Config{AdminUsername: "admin", AdminPassword: "secret"}).HasAdminCredentials() {
		t.Error("configured pair not detected")
	}
}
