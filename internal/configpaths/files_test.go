package configpaths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protosmith/protosmith/internal/configpaths"
)

func setConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return filepath.Join(dir, configpaths.AppName)
}

func TestDefaultNamedConfigPath(t *testing.T) {
	home := setConfigHome(t)

	tests := map[string]string{
		"json":  "generate.json",
		"yaml":  "generate.yaml",
		"yml":   "generate.yaml",
		"toml":  "generate.toml",
		"other": "generate.json",
	}
	for format, want := range tests {
		got, err := configpaths.DefaultNamedConfigPath("generate", format)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, want), got, format)
	}
}

func TestConfigCandidatePaths(t *testing.T) {
	home := setConfigHome(t)
	wd := t.TempDir()
	t.Chdir(wd)

	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths("custom.yml")

	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "custom.yml", yamlPaths[0], "user path comes first")
	assert.Equal(t, filepath.Join(wd, "protosmith.json"), jsonPaths[0])
	assert.Contains(t, yamlPaths, filepath.Join(wd, "protosmith.yaml"))
	assert.Contains(t, tomlPaths, filepath.Join(home, "compile.toml"))
	assert.Contains(t, jsonPaths, filepath.Join(home, "config.json"))
}

func TestConfigCandidatePathsUnknownExtension(t *testing.T) {
	setConfigHome(t)
	jsonPaths, yamlPaths, _ := configpaths.ConfigCandidatePaths("protosmith.conf")
	assert.Equal(t, "protosmith.conf", jsonPaths[0])
	assert.NotContains(t, yamlPaths, "protosmith.conf")
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "generate.json")
	require.NoError(t, configpaths.EnsureDir(path))
	assert.DirExists(t, filepath.Dir(path))
}
