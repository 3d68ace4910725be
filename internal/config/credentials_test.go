package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vizctl/internal/config"
)

func TestPaired(t *testing.T) {
	tests := []struct {
		name   string
		creds  *config.Credentials
		paired bool
	}{
		{"nil credentials", nil, false},
		{"empty credentials", &config.Credentials{}, false},
		{"ip only", &config.Credentials{IP: "192.168.1.50"}, false},
		{"token only", &config.Credentials{AuthToken: "Zsexf3"}, false},
		{"complete", &config.Credentials{IP: "192.168.1.50", AuthToken: "Zsexf3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.paired, tt.creds.Paired())
		})
	}
}

func TestStore(t *testing.T) {
	t.Run("missing file loads as empty credentials", func(t *testing.T) {
		store := config.NewStore(filepath.Join(t.TempDir(), "creds.json"))

		creds, err := store.Load()
		require.NoError(t, err)
		assert.False(t, creds.Paired())
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.json")
		store := config.NewStore(path)

		saved := &config.Credentials{
			IP:        "192.168.1.50",
			AuthToken: "Zsexf3",
			MAC:       "aa:bb:cc:dd:ee:ff",
		}
		require.NoError(t, store.Save(saved))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("re-pairing replaces the file wholesale", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.json")
		store := config.NewStore(path)

		require.NoError(t, store.Save(&config.Credentials{
			IP:        "192.168.1.50",
			AuthToken: "old-token",
			MAC:       "aa:bb:cc:dd:ee:ff",
		}))

		// The new pairing has no MAC; nothing from the old file may leak in
		require.NoError(t, store.Save(&config.Credentials{
			IP:        "192.168.1.60",
			AuthToken: "new-token",
		}))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.60", loaded.IP)
		assert.Equal(t, "new-token", loaded.AuthToken)
		assert.Empty(t, loaded.MAC)
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "creds.json")
		store := config.NewStore(path)

		require.NoError(t, store.Save(&config.Credentials{IP: "192.168.1.50", AuthToken: "tok"}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("credentials file is not world readable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("file modes are meaningless on windows")
		}

		path := filepath.Join(t.TempDir(), "creds.json")
		store := config.NewStore(path)
		require.NoError(t, store.Save(&config.Credentials{IP: "192.168.1.50", AuthToken: "tok"}))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

		_, err := config.NewStore(path).Load()
		assert.Error(t, err)
	})
}
