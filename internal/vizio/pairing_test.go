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

func TestBeginPair(t *testing.T) {
	t.Run("starts the handshake and returns the session token", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]interface{}

		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			data, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &gotBody))
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{"PAIRING_REQ_TOKEN":634073}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		session, err := client.BeginPair(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "/pairing/start", gotPath)
		assert.Equal(t, 634073, session.Token)
		assert.NotEmpty(t, gotBody["DEVICE_NAME"])
		assert.NotEmpty(t, gotBody["DEVICE_ID"])
	})

	t.Run("pairing needs no auth token", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("AUTH"))
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{"PAIRING_REQ_TOKEN":1}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		_, err := client.BeginPair(context.Background())
		assert.NoError(t, err)
	})

	t.Run("rejected start is a pairing failure", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"STATUS":{"RESULT":"BLOCKED","DETAIL":"Pairing disabled"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		_, err := client.BeginPair(context.Background())

		assert.ErrorIs(t, err, vizio.ErrPairingFailed)
	})

	t.Run("missing pairing token is a pairing failure", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		_, err := client.BeginPair(context.Background())

		assert.ErrorIs(t, err, vizio.ErrPairingFailed)
	})
}

func TestCompletePair(t *testing.T) {
	t.Run("correct PIN yields the auth token with the same device identity", func(t *testing.T) {
		var startID, pairID string
		var gotBody map[string]interface{}

		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &body))

			switch r.URL.Path {
			case "/pairing/start":
				startID, _ = body["DEVICE_ID"].(string)
				w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{"PAIRING_REQ_TOKEN":42}}`))
			case "/pairing/pair":
				pairID, _ = body["DEVICE_ID"].(string)
				gotBody = body
				w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{"AUTH_TOKEN":"Zsexf3"}}`))
			}
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		session, err := client.BeginPair(context.Background())
		require.NoError(t, err)

		token, err := client.CompletePair(context.Background(), session, "1234")
		require.NoError(t, err)

		assert.Equal(t, "Zsexf3", token)
		assert.Equal(t, startID, pairID, "both pairing phases must use the same device identity")
		assert.Equal(t, float64(42), gotBody["PAIRING_REQ_TOKEN"])
		assert.Equal(t, float64(1), gotBody["CHALLENGE_TYPE"])
		assert.Equal(t, "1234", gotBody["RESPONSE_VALUE"])
	})

	t.Run("PIN is trimmed before sending", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, "9876", body["RESPONSE_VALUE"])
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"},"ITEM":{"AUTH_TOKEN":"tok"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		_, err := client.CompletePair(context.Background(), &vizio.PairingSession{Token: 1}, "  9876\n")
		assert.NoError(t, err)
	})

	t.Run("wrong PIN is a pairing failure", func(t *testing.T) {
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"STATUS":{"RESULT":"CHALLENGE_INCORRECT","DETAIL":"Incorrect PIN"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		_, err := client.CompletePair(context.Background(), &vizio.PairingSession{Token: 42}, "0000")

		assert.ErrorIs(t, err, vizio.ErrPairingFailed)
	})

	t.Run("empty PIN fails without a request", func(t *testing.T) {
		requests := 0
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			requests++
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		_, err := client.CompletePair(context.Background(), &vizio.PairingSession{Token: 42}, "   ")

		assert.ErrorIs(t, err, vizio.ErrPairingFailed)
		assert.Equal(t, 0, requests)
	})

	t.Run("nil session fails without a request", func(t *testing.T) {
		client := vizio.NewClient("192.0.2.1", "", false)
		_, err := client.CompletePair(context.Background(), nil, "1234")
		assert.ErrorIs(t, err, vizio.ErrPairingFailed)
	})
}

func TestCancelPair(t *testing.T) {
	t.Run("sends the session token to the cancel endpoint", func(t *testing.T) {
		var gotPath string
		server := createMockTV(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"STATUS":{"RESULT":"SUCCESS"}}`))
		})
		defer server.Close()

		client := createTestClient(server.URL, "")
		err := client.CancelPair(context.Background(), &vizio.PairingSession{Token: 42})

		require.NoError(t, err)
		assert.Equal(t, "/pairing/cancel", gotPath)
	})

	t.Run("nil session is a no-op", func(t *testing.T) {
		client := vizio.NewClient("192.0.2.1", "", false)
		assert.NoError(t, client.CancelPair(context.Background(), nil))
	})
}
