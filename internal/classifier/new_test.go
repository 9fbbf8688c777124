package classifier

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"support-router/config"
	"support-router/pkg/log"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	raw, _ := json.Marshal(toyModel())
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     config.ClassifierConfig
		llm     Generator
		want    string
		wantErr bool
	}{
		{"linear", config.ClassifierConfig{Backend: "linear", ModelPath: path}, nil, BackendLinear, false},
		{"remote", config.ClassifierConfig{Backend: "remote", URL: "http://localhost:9000/classify", Timeout: "2s", MaxRetries: 2}, nil, BackendRemote, false},
		{"remote bad timeout", config.ClassifierConfig{Backend: "remote", URL: "http://x", Timeout: "soon"}, nil, "", true},
		{"llm", config.ClassifierConfig{Backend: "llm"}, &fakeGenerator{}, BackendLLM, false},
		{"llm without provider", config.ClassifierConfig{Backend: "llm"}, nil, "", true},
		{"linear missing file", config.ClassifierConfig{Backend: "linear", ModelPath: "/nope.json"}, nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, tt.llm, log.NewNop())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c.Name() != tt.want {
				t.Errorf("Name = %s, want %s", c.Name(), tt.want)
			}
		})
	}

	if _, err := New(config.ClassifierConfig{Backend: "bert"}, nil, log.NewNop()); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
}
