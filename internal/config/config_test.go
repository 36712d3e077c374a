package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points the global config at a temp dir and chdirs into it.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	require.Equal(t, "/custom/config/augur/augur.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	require.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %s", got)
	require.Equal(t, "augur.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	require.Equal(t, "augur.yml", ProjectPath())
}

func TestExists(t *testing.T) {
	isolate(t)

	t.Run("no config exists", func(t *testing.T) {
		require.False(t, Exists())
	})

	t.Run("global config exists", func(t *testing.T) {
		require.NoError(t, WriteGlobal(Default()))
		defer func() { _ = os.Remove(GlobalPath()) }()
		require.True(t, Exists())
	})

	t.Run("project config exists", func(t *testing.T) {
		require.NoError(t, WriteProject(Default()))
		defer func() { _ = os.Remove(ProjectPath()) }()
		require.True(t, Exists())
	})
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Locale:   "vi",
		DataDir:  ".test",
		LogLevel: "debug",
		LogFile:  "/tmp/test.log",
		Persist:  false,
		Headless: true,
	}
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)

	content := string(data)
	for _, field := range []string{
		"locale: vi",
		"data_dir: .test",
		"log_level: debug",
		"log_file: /tmp/test.log",
		"persist: false",
		"headless: true",
	} {
		require.Contains(t, content, field)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteGlobal(&Config{
		Locale:   "en",
		DataDir:  ".global",
		LogLevel: "warn",
		Persist:  true,
	}))

	// Project file overrides only the keys it sets
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("data_dir: .project\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".project", cfg.DataDir)
	require.Equal(t, "warn", cfg.LogLevel)

	// Env overrides both files
	t.Setenv("AUGUR_LOG_LEVEL", "debug")
	t.Setenv("AUGUR_PERSIST", "false")
	t.Setenv("AUGUR_LOCALE", "vi")

	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.Persist)
	require.Equal(t, "vi", cfg.Locale)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "regional locale", mutate: func(c *Config) { c.Locale = "pt-BR" }},
		{name: "bad locale", mutate: func(c *Config) { c.Locale = "not a locale" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = " " }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStoreDir(t *testing.T) {
	cfg := Default()
	require.Equal(t, filepath.Join(".augur", "jetstream"), cfg.StoreDir())
}
