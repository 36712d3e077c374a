// Package hooks runs user commands when a wizard is submitted.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".augur.hooks.yml"

var log = logger.Default.Named("hooks")

// LoadConfig loads the hooks configuration from the working directory.
// Returns nil if the config file doesn't exist (hooks are optional).
// Returns an error only if the file exists but cannot be parsed.
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	log.Debug("Loaded hooks config from %s (version: %d)", configPath, cfg.Version)
	return &cfg, nil
}

// Variables holds template variables that can be expanded in hook commands.
type Variables struct {
	Feature string
	Source  string
}

// Result is the outcome of one hook run.
type Result struct {
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Execute runs a hook command with the payload JSON on stdin.
// Template variables in the command ({{feature}}, {{source}}) are expanded
// before execution and also exported as AUGUR_FEATURE and AUGUR_SOURCE.
// A failing command is reported as an error; a timeout is not.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables, payload []byte) (Result, error) {
	if hook == nil || hook.Command == "" {
		return Result{}, nil
	}

	command := expandVariables(hook.Command, vars)
	log.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"AUGUR_FEATURE="+vars.Feature,
		"AUGUR_SOURCE="+vars.Source,
	)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	// Propagate cancellation of the parent context
	if ctx.Err() != nil {
		return res, ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		log.Warn("Hook command timed out after %ds: %s", timeout, command)
		res.TimedOut = true
		return res, nil
	}

	if err != nil {
		return res, fmt.Errorf("hook command failed: %w", err)
	}

	log.Debug("Hook executed successfully, output length: %d bytes", len(res.Stdout))
	return res, nil
}

// Sink returns an OnComplete callback that runs the post_submit hook for
// every payload. A nil config yields a no-op callback.
func Sink(ctx context.Context, cfg *Config, workDir, source string) func(form.Payload) {
	return func(p form.Payload) {
		if cfg == nil || cfg.Hooks.PostSubmit == nil {
			return
		}
		data, err := json.Marshal(p)
		if err != nil {
			log.Error("Encode payload for hook: %v", err)
			return
		}
		vars := Variables{Feature: p.Definition(), Source: source}
		res, err := Execute(ctx, cfg.Hooks.PostSubmit, workDir, vars, data)
		if err != nil {
			log.Warn("post_submit hook for %s: %v (stderr: %s)", vars.Feature, err, strings.TrimSpace(res.Stderr))
		}
	}
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	replacements := map[string]string{
		"{{feature}}": vars.Feature,
		"{{source}}":  vars.Source,
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
