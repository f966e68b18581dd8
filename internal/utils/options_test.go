package utils

import (
	"testing"
)

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		name      string
		option    string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{
			name:      "simple key=value",
			option:    "env=production",
			wantKey:   "env",
			wantValue: "production",
		},
		{
			name:      "value with spaces",
			option:    "message=hello world",
			wantKey:   "message",
			wantValue: "hello world",
		},
		{
			name:      "value containing equals",
			option:    "ldflags=-X main.version=1.0",
			wantKey:   "ldflags",
			wantValue: "-X main.version=1.0",
		},
		{
			name:      "key only (presence flag)",
			option:    "release",
			wantKey:   "release",
			wantValue: "true",
		},
		{
			name:      "empty value",
			option:    "target=",
			wantKey:   "target",
			wantValue: "",
		},
		{
			name:      "key with spaces trimmed",
			option:    "  env  =  production  ",
			wantKey:   "env",
			wantValue: "production",
		},
		{
			name:    "empty key",
			option:  "=value",
			wantErr: true,
		},
		{
			name:    "empty option",
			option:  "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParseKeyValue(tt.option)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeyValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if key != tt.wantKey || value != tt.wantValue {
				t.Errorf("ParseKeyValue() = (%q, %q), want (%q, %q)", key, value, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"env":       "SPIN_OPT_ENV",
		"log-level": "SPIN_OPT_LOG_LEVEL",
		"go.os":     "SPIN_OPT_GO_OS",
	}
	for key, want := range tests {
		if got := EnvKey("SPIN_OPT_", key); got != want {
			t.Errorf("EnvKey(%q) = %q, want %q", key, got, want)
		}
	}
}
