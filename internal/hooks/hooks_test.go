package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/augur/internal/form"
)

func TestLoadConfig(t *testing.T) {
	workDir := t.TempDir()

	cfg, err := LoadConfig(workDir)
	if err != nil || cfg != nil {
		t.Fatalf("missing file: got %v, %v; want nil, nil", cfg, err)
	}

	content := "version: 1\nhooks:\n  post_submit:\n    command: cat > out.json\n    timeout: 5\n"
	if err := os.WriteFile(filepath.Join(workDir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(workDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Version != 1 || cfg.Hooks.PostSubmit == nil || cfg.Hooks.PostSubmit.Command != "cat > out.json" || cfg.Hooks.PostSubmit.Timeout != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(workDir, ConfigFileName), []byte("hooks: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(workDir); err == nil {
		t.Error("expected parse error")
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()
	vars := Variables{Feature: "tarot", Source: "cli"}

	tests := []struct {
		name       string
		hook       *HookConfig
		stdin      string
		wantStdout string
		wantErr    bool
	}{
		{name: "nil hook", hook: nil},
		{name: "empty command", hook: &HookConfig{}},
		{
			name:       "template variables",
			hook:       &HookConfig{Command: "echo {{feature}}-{{source}}", Timeout: 5},
			wantStdout: "tarot-cli\n",
		},
		{
			name:       "environment",
			hook:       &HookConfig{Command: "echo $AUGUR_FEATURE $AUGUR_SOURCE", Timeout: 5},
			wantStdout: "tarot cli\n",
		},
		{
			name:       "payload on stdin",
			hook:       &HookConfig{Command: "cat", Timeout: 5},
			stdin:      `{"a":1}`,
			wantStdout: `{"a":1}`,
		},
		{
			name:    "failing command",
			hook:    &HookConfig{Command: "exit 3", Timeout: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Execute(ctx, tt.hook, workDir, vars, []byte(tt.stdin))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Execute() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Stdout != tt.wantStdout {
				t.Errorf("Execute() stdout = %q, expected %q", res.Stdout, tt.wantStdout)
			}
		})
	}
}

func TestExecute_Timeout(t *testing.T) {
	res, err := Execute(context.Background(), &HookConfig{Command: "sleep 5", Timeout: 1}, t.TempDir(), Variables{}, nil)
	if err != nil {
		t.Fatalf("timeout should not be an error, got %v", err)
	}
	if !res.TimedOut {
		t.Error("expected TimedOut")
	}
}

func TestExecute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := Execute(ctx, &HookConfig{Command: "echo 'test'", Timeout: 5}, t.TempDir(), Variables{}, nil)
	if err == nil {
		t.Error("Execute() expected error for cancelled context, got nil")
	}
}

func TestSink(t *testing.T) {
	workDir := t.TempDir()
	cfg := &Config{Hooks: HooksConfig{PostSubmit: &HookConfig{Command: "cat > {{feature}}.json", Timeout: 5}}}

	def := form.MustDefinition("greeting", "Greeting", []form.Step{
		{Index: 0, Key: "who", Fields: []form.Field{{Name: "name", Kind: form.KindString}}},
	})
	w, err := form.New(def, form.OnComplete(Sink(context.Background(), cfg, workDir, "cli")))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Set("name", form.String("Lan")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Submit(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(workDir, "greeting.json"))
	if err != nil {
		t.Fatalf("hook did not write its output: %v", err)
	}
	if !strings.Contains(string(data), `"Lan"`) {
		t.Errorf("hook stdin missing payload: %s", data)
	}

	// No config is a no-op
	Sink(context.Background(), nil, workDir, "cli")(form.Payload{})
}
