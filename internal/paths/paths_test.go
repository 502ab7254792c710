package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutputPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	cwdDefault := filepath.Join(cwd, "coco2017.db")

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{
			name:        "flag wins over all",
			flag:        "/flag/out.db",
			configValue: "/config/out.db",
			envVal:      "/env/out.db",
			want:        "/flag/out.db",
		},
		{
			name:        "config value wins over env",
			flag:        "",
			configValue: "/config/out.db",
			envVal:      "/env/out.db",
			want:        "/config/out.db",
		},
		{
			name:        "env wins when flag and config empty",
			flag:        "",
			configValue: "",
			envVal:      "/env/out.db",
			want:        "/env/out.db",
		},
		{
			name:        "CWD default when all empty",
			flag:        "",
			configValue: "",
			envVal:      "",
			want:        cwdDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvOutputPath, tt.envVal)
			got, err := ResolveOutputPath(tt.flag, tt.configValue, "coco2017.db")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOutputPath_AbsolutePath(t *testing.T) {
	t.Run("relative flag becomes absolute", func(t *testing.T) {
		t.Setenv(EnvOutputPath, "")
		got, err := ResolveOutputPath("relative/out.db", "", "x.db")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("relative env becomes absolute", func(t *testing.T) {
		t.Setenv(EnvOutputPath, "relative/env.db")
		got, err := ResolveOutputPath("", "", "x.db")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}

func TestResolveConfigFile(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string // empty means expect empty result
	}{
		{
			name:   "flag wins over env",
			flag:   "/explicit/openimages.yaml",
			envVal: "/env/openimages.yaml",
			want:   "/explicit/openimages.yaml",
		},
		{
			name:   "env wins when flag empty",
			flag:   "",
			envVal: "/env/openimages.yaml",
			want:   "/env/openimages.yaml",
		},
		{
			name:   "empty when neither set",
			flag:   "",
			envVal: "",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigFile, tt.envVal)
			got, err := ResolveConfigFile(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
