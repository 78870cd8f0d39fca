package configpaths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Alia5/remapper/internal/configpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG only applies to unix")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "remapper"), dir)

	rules, err := configpaths.DefaultRulesDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "remapper", "rules"), rules)

	p, err := configpaths.DefaultNamedConfigPath("simulate", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "remapper", "simulate.yaml"), p)
}

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	type testCase struct {
		name     string
		userPath string
		wantJSON bool
		wantYAML bool
		wantTOML bool
	}
	cases := []testCase{
		{name: "json", userPath: "/x/my.json", wantJSON: true},
		{name: "yaml", userPath: "/x/my.yml", wantYAML: true},
		{name: "toml", userPath: "/x/my.toml", wantTOML: true},
		{name: "no extension", userPath: "/x/my", wantJSON: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j, y, to := configpaths.ConfigCandidatePaths(tc.userPath)
			assert.Equal(t, tc.wantJSON, j[0] == tc.userPath)
			assert.Equal(t, tc.wantYAML, y[0] == tc.userPath)
			assert.Equal(t, tc.wantTOML, to[0] == tc.userPath)
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, configpaths.EnsureDir(filepath.Join(dir, "a", "b", "config.json")))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
}
