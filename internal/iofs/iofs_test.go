package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faersetl/faersetl/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls are harmless
	for range 3 {
		require.NoError(t, EnsureDirs(home))
	}

	dirs := []struct {
		msg  string
		path string
	}{
		{"config", filepath.Join(home, ".config", "faersetl")},
		{"cache", filepath.Join(home, ".cache", "faersetl")},
		{"stage", filepath.Join(home, ".cache", "faersetl", "stage")},
		{"logs", filepath.Join(home, ".local", "share", "faersetl", "logs")},
	}
	for _, v := range dirs {
		info, err := os.Stat(v.path)
		require.NoError(t, err, v.msg)
		assert.True(t, info.IsDir(), v.msg)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v.msg)
	}
}

func TestEnsureDirFails(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := EnsureDir(filepath.Join(file, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// user edits survive
	custom := "warehouse:\n  host: myhost\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(home))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestConfigYAMLEmbedded(t *testing.T) {
	for _, v := range []string{"extract:", "stage:", "warehouse:", "log:",
		"target_count: 79250", "fda_reports"} {
		assert.Contains(t, ConfigYAML, v)
	}
}
