package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveSecret(t *testing.T) {
	t.Setenv("NETFLUX_TEST_TOKEN", " s3cr3t ")
	dir := t.TempDir()
	path := filepath.Join(dir, "token.txt")
	if err := os.WriteFile(path, []byte("  file-token \n"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"", ""},
		{"  plain  ", "plain"},
		{"env:NETFLUX_TEST_TOKEN", "s3cr3t"},
		{"file:" + path, "file-token"},
	}
	for _, tc := range tests {
		got, err := ResolveSecret(tc.ref)
		if err != nil {
			t.Fatalf("ResolveSecret(%q): %v", tc.ref, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveSecret(%q)=%q, want %q", tc.ref, got, tc.want)
		}
	}
}

func TestResolveSecretErrors(t *testing.T) {
	if _, err := ResolveSecret("env:NETFLUX_TEST_UNSET_TOKEN"); err == nil {
		t.Fatalf("expected error for unset env")
	}
	if _, err := ResolveSecret("file:does-not-exist"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMetricsExportToken(t *testing.T) {
	t.Setenv("NETFLUX_TEST_RW", "abc")
	cfg := MetricsExportConfig{BearerToken: "env:NETFLUX_TEST_RW"}
	got, err := cfg.Token()
	if err != nil || got != "abc" {
		t.Fatalf("expected token abc, got %q err=%v", got, err)
	}
}
