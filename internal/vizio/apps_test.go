package vizio_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vizctl/internal/vizio"
)

func TestAppTableLookup(t *testing.T) {
	t.Run("lookup is case-insensitive", func(t *testing.T) {
		table := vizio.DefaultApps()

		lower, ok := table.Lookup("netflix")
		require.True(t, ok)
		upper, ok := table.Lookup("NETFLIX")
		require.True(t, ok)
		mixed, ok := table.Lookup("Netflix")
		require.True(t, ok)

		assert.Equal(t, lower, upper)
		assert.Equal(t, lower, mixed)
	})

	t.Run("unknown app is not found", func(t *testing.T) {
		_, ok := vizio.DefaultApps().Lookup("blockbuster")
		assert.False(t, ok)
	})

	t.Run("apps are listed sorted by name", func(t *testing.T) {
		apps := vizio.DefaultApps().Apps()
		require.NotEmpty(t, apps)
		for i := 1; i < len(apps); i++ {
			assert.Less(t, apps[i-1].Name, apps[i].Name)
		}
	})
}

func TestLoadAppTable(t *testing.T) {
	t.Run("overlays extra apps on the built-in table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "apps.yml")
		yaml := `
- name: Jellyfin
  namespace: 4
  app_id: "9999"
  message: https://example.com/jellyfin
- name: Netflix
  namespace: 3
  app_id: "2"
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

		table, err := vizio.LoadAppTable(path)
		require.NoError(t, err)

		added, ok := table.Lookup("jellyfin")
		require.True(t, ok)
		assert.Equal(t, "9999", added.AppID)

		// Same-name entries replace the built-in descriptor
		replaced, ok := table.Lookup("netflix")
		require.True(t, ok)
		assert.Equal(t, "2", replaced.AppID)

		// Untouched defaults survive
		_, ok = table.Lookup("youtube")
		assert.True(t, ok)
	})

	t.Run("rejects entries without a name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "apps.yml")
		require.NoError(t, os.WriteFile(path, []byte("- app_id: \"1\"\n  namespace: 3\n"), 0o644))

		_, err := vizio.LoadAppTable(path)
		assert.Error(t, err)
	})

	t.Run("rejects entries without an app id", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "apps.yml")
		require.NoError(t, os.WriteFile(path, []byte("- name: Mystery\n  namespace: 3\n"), 0o644))

		_, err := vizio.LoadAppTable(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := vizio.LoadAppTable(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestLaunchApp(t *testing.T) {
	t.Run("sends the app descriptor to the launch endpoint", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]map[string]interface{}

		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &gotBody))
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		res, err := client.LaunchApp(context.Background(), "Netflix")

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "/app/launch", gotPath)

		value := gotBody["VALUE"]
		assert.Equal(t, "1", value["APP_ID"])
		assert.Equal(t, float64(3), value["NAME_SPACE"])
		// Netflix carries no launch URL; the firmware wants the literal "None"
		assert.Equal(t, "None", value["MESSAGE"])
	})

	t.Run("different casings produce identical requests", func(t *testing.T) {
		var bodies []string
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(data))
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.LaunchApp(context.Background(), "netflix")
		require.NoError(t, err)
		_, err = client.LaunchApp(context.Background(), "NETFLIX")
		require.NoError(t, err)

		require.Len(t, bodies, 2)
		assert.Equal(t, bodies[0], bodies[1])
	})

	t.Run("apps with a launch URL send it as the message", func(t *testing.T) {
		var gotBody map[string]map[string]interface{}
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &gotBody))
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.LaunchApp(context.Background(), "tubi")

		require.NoError(t, err)
		assert.Contains(t, gotBody["VALUE"]["MESSAGE"], "tubitv.com")
	})

	t.Run("unknown app sends no request", func(t *testing.T) {
		requests := 0
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			requests++
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.LaunchApp(context.Background(), "blockbuster")

		assert.ErrorIs(t, err, vizio.ErrUnknownApp)
		assert.Equal(t, 0, requests)
	})
}

func TestCurrentApp(t *testing.T) {
	t.Run("parses the running app descriptor", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/app/current", r.URL.Path)
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{"TYPE":"T_APP_V1","VALUE":{"APP_ID":"1","NAME_SPACE":3,"MESSAGE":"None"}}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		running, err := client.CurrentApp(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "1", running.AppID)
		assert.Equal(t, 3, running.Namespace)
	})

	t.Run("failure result is an error", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.CurrentApp(context.Background())
		assert.Error(t, err)
	})
}
