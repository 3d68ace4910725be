package vizio_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vizctl/internal/vizio"
)

const inputListBody = `{
	"STATUS": {"RESULT": "SUCCESS"},
	"ITEMS": [
		{"CNAME": "cast", "NAME": "CAST", "VALUE": "CAST"},
		{"CNAME": "hdmi1", "NAME": "HDMI-1", "VALUE": {"NAME": "Chromecast"}},
		{"CNAME": "hdmi2", "NAME": "HDMI-2", "VALUE": "HDMI-2"}
	]
}`

const currentInputBody = `{
	"STATUS": {"RESULT": "SUCCESS"},
	"ITEMS": [
		{"CNAME": "current_input", "NAME": "Current Input", "VALUE": "HDMI-2", "HASHVAL": 3057664350}
	]
}`

func TestListInputs(t *testing.T) {
	t.Run("parses both string and object values", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/menu_native/dynamic/tv_settings/devices/name_input", r.URL.Path)
			w.Write([]byte(inputListBody))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		inputs, err := client.ListInputs(context.Background())

		require.NoError(t, err)
		require.Len(t, inputs, 3)
		assert.Equal(t, vizio.Input{CName: "cast", Name: "CAST"}, inputs[0])
		// Owners rename inputs; the label comes from the VALUE object
		assert.Equal(t, vizio.Input{CName: "hdmi1", Name: "Chromecast"}, inputs[1])
	})
}

func TestCurrentInput(t *testing.T) {
	t.Run("reads the current input value", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/menu_native/dynamic/tv_settings/devices/current_input", r.URL.Path)
			w.Write([]byte(currentInputBody))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		current, err := client.CurrentInput(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "HDMI-2", current)
	})
}

func TestSelectInput(t *testing.T) {
	newInputServer := func(t *testing.T, modify *map[string]interface{}) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/menu_native/dynamic/tv_settings/devices/name_input":
				w.Write([]byte(inputListBody))
			case r.Method == http.MethodGet:
				w.Write([]byte(currentInputBody))
			default:
				data, _ := io.ReadAll(r.Body)
				require.NoError(t, json.Unmarshal(data, modify))
				w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"}}`))
			}
		}
	}

	t.Run("echoes the current hash back in the modify request", func(t *testing.T) {
		var modify map[string]interface{}
		server := createMockTV(newInputServer(t, &modify))
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		res, err := client.SelectInput(context.Background(), "HDMI-1")

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "MODIFY", modify["REQUEST"])
		assert.Equal(t, "Chromecast", modify["VALUE"])
		assert.Equal(t, float64(3057664350), modify["HASHVAL"])
	})

	t.Run("matches port names case-insensitively", func(t *testing.T) {
		var modify map[string]interface{}
		server := createMockTV(newInputServer(t, &modify))
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.SelectInput(context.Background(), "hdmi2")

		require.NoError(t, err)
		assert.Equal(t, "HDMI-2", modify["VALUE"])
	})

	t.Run("matches renamed labels case-insensitively", func(t *testing.T) {
		var modify map[string]interface{}
		server := createMockTV(newInputServer(t, &modify))
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.SelectInput(context.Background(), "chromecast")

		require.NoError(t, err)
		assert.Equal(t, "Chromecast", modify["VALUE"])
	})

	t.Run("unknown input sends no modify request", func(t *testing.T) {
		writes := 0
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				writes++
				return
			}
			w.Write([]byte(inputListBody))
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.SelectInput(context.Background(), "scart")

		assert.ErrorIs(t, err, vizio.ErrUnknownInput)
		assert.Equal(t, 0, writes)
	})

	t.Run("missing hash aborts the write", func(t *testing.T) {
		writes := 0
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/menu_native/dynamic/tv_settings/devices/name_input":
				w.Write([]byte(inputListBody))
			case r.Method == http.MethodGet:
				w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEMS":[{"CNAME":"current_input","VALUE":"HDMI-2"}]}`))
			default:
				writes++
			}
		})
		defer server.Close()

		client := createTestClient(server.URL, "tok")
		_, err := client.SelectInput(context.Background(), "HDMI-1")

		require.Error(t, err)
		assert.Equal(t, 0, writes)
	})
}
