package config

import (
	"fmt"
	"os"
	"strings"
)

// ResolveSecret expands "env:NAME" and "file:/path" references. Plain values
// are returned trimmed.
func ResolveSecret(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return "", nil
	case strings.HasPrefix(ref, "env:"):
		name := strings.TrimPrefix(ref, "env:")
		value, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("secret env %s is not set", name)
		}
		return strings.TrimSpace(value), nil
	case strings.HasPrefix(ref, "file:"):
		data, err := os.ReadFile(strings.TrimPrefix(ref, "file:"))
		if err != nil {
			return "", fmt.Errorf("read secret file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return ref, nil
	}
}

// Token resolves the bearer token sent with remote-write requests.
func (c MetricsExportConfig) Token() (string, error) {
	return ResolveSecret(c.BearerToken)
}
