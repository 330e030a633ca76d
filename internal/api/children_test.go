package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/document"
)

func TestCreateEndpoint(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/endpoints/create", r.URL.Path)

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, float64(11), body["api_id"])
		assert.Equal(t, "/users", body["title"])
		assert.Equal(t, "GET", body["method"])
		assert.Equal(t, float64(0), body["location"])

		writeJSON(w, map[string]any{"id": 21, "title": "/users", "method": "GET", "location": 0})
	})

	ep, err := client.CreateEndpoint(11, "/users", document.MethodGet, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(21), ep.ID)
}

func TestCreateField(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/fields/create", r.URL.Path)

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, float64(21), body["endpoint_id"])
		assert.Equal(t, "returns all users", body["value"])

		writeJSON(w, map[string]any{"id": 31, "value": "returns all users", "location": 0})
	})

	f, err := client.CreateField(21, "returns all users", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(31), f.ID)
}

func TestDeleteEndpointNotFound(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]any{"detail": "No such endpoint"})
	})

	err := client.DeleteEndpoint(99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteField(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "31", r.URL.Query().Get("field_id"))
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.DeleteField(31))
}
