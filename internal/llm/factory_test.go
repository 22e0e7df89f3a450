package llm

import (
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantErr  bool
		wantName string
	}{
		{
			name:     "groq",
			config:   Config{Provider: "groq", APIKey: "key"},
			wantName: "groq",
		},
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "key"},
			wantName: "openai",
		},
		{
			name:     "case insensitive",
			config:   Config{Provider: "Groq", APIKey: "key"},
			wantName: "groq",
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "anthropic", APIKey: "key"},
			wantErr: true,
		},
		{
			name:    "missing api key",
			config:  Config{Provider: "groq"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if provider.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", provider.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProvider_UnknownListsSupported(t *testing.T) {
	_, err := NewProvider(Config{Provider: "mystery", APIKey: "key"})
	if err == nil || !strings.Contains(err.Error(), "supported") {
		t.Errorf("Error should list supported providers: %v", err)
	}
}
