package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{"STAGE": "dev"},
			want: Config{Stage: "dev", Port: "9191", CompDifficulty: 3},
		},
		{
			name: "all set",
			env: map[string]string{
				"STAGE":           "prod",
				"PORT":            "7171",
				"DATABASE_URL":    "postgres://localhost/battleship",
				"COMP_DIFFICULTY": "1",
				"GAME_SEED":       "42",
			},
			want: Config{Stage: "prod", Port: "7171", DatabaseUrl: "postgres://localhost/battleship", CompDifficulty: 1, GameSeed: 42},
		},
		{name: "missing stage", env: map[string]string{}, wantErr: true},
		{name: "bad port", env: map[string]string{"STAGE": "dev", "PORT": "abc"}, wantErr: true},
		{name: "difficulty too high", env: map[string]string{"STAGE": "dev", "COMP_DIFFICULTY": "4"}, wantErr: true},
		{name: "bad seed", env: map[string]string{"STAGE": "dev", "GAME_SEED": "x"}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, key := range []string{"STAGE", "PORT", "DATABASE_URL", "COMP_DIFFICULTY", "GAME_SEED"} {
				t.Setenv(key, test.env[key])
			}

			cfg, err := FromEnv()
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, cfg)
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	for _, key := range []string{"STAGE", "PORT", "DATABASE_URL", "COMP_DIFFICULTY", "GAME_SEED"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STAGE=dev\nPORT=8080\nCOMP_DIFFICULTY=2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2, cfg.CompDifficulty)
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("STAGE", "dev")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
