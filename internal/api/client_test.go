package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "test-token")
	return srv, client
}

func writeJSON(w http.ResponseWriter, data any) {
	b, _ := json.Marshal(data)
	w.Write(b)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeJSON(w, map[string]any{"id": 1, "title": "t"})
	})

	_, err := client.ReadDocument(1)
	require.NoError(t, err)
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]any{"detail": "No such api"})
	})

	_, err := client.ReadDocument(99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestErrorDetailSurfaces(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]any{"detail": "Unauthorized request"})
	})

	_, err := client.ReadDocument(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized request")
	assert.False(t, IsNotFound(err))
}

func TestErrorWithoutDetailFallsBackToStatus(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := client.ReadDocument(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestConnectionRefusedIsTransientError(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.ReadDocument(1)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
