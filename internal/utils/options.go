package utils

import (
	"fmt"
	"strings"
)

// ParseKeyValue splits a "key=value" option into its parts.
// Input examples:
//   - "env=production" → ("env", "production")
//   - "  target = linux/amd64 " → ("target", "linux/amd64")
//   - "release" → ("release", "true") (presence flag)
func ParseKeyValue(option string) (string, string, error) {
	if strings.TrimSpace(option) == "" {
		return "", "", fmt.Errorf("option cannot be empty")
	}

	// Key only, treated as a boolean switch
	if !strings.Contains(option, "=") {
		return strings.TrimSpace(option), "true", nil
	}

	parts := strings.SplitN(option, "=", 2)
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	if key == "" {
		return "", "", fmt.Errorf("option key cannot be empty: %s", option)
	}

	return key, value, nil
}

// EnvKey turns an option key into an environment variable name with the given
// prefix, e.g. ("SPIN_OPT_", "log-level") → "SPIN_OPT_LOG_LEVEL".
func EnvKey(prefix, key string) string {
	replacer := strings.NewReplacer("-", "_", ".", "_", " ", "_")
	return prefix + strings.ToUpper(replacer.Replace(key))
}
