package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/document"
)

func TestUnmarshalEndpointsRestoresLocationOrder(t *testing.T) {
	// The store does not promise row order, only location values.
	serialized := `[
		{"id":2,"title":"/posts","method":"POST","location":1,"fields":[]},
		{"id":1,"title":"/users","method":"GET","location":0,"fields":[
			{"id":12,"value":"second","indent":0,"location":1},
			{"id":11,"value":"first","indent":0,"location":0}
		]}
	]`

	endpoints, err := UnmarshalEndpoints(serialized)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	assert.Equal(t, "/users", endpoints[0].Title)
	assert.Equal(t, 0, endpoints[0].Location)
	assert.Equal(t, document.RealID(1), endpoints[0].RealID)
	assert.Equal(t, "/posts", endpoints[1].Title)
	assert.Equal(t, 1, endpoints[1].Location)

	fields := endpoints[0].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "first", fields[0].Value)
	assert.Equal(t, "second", fields[1].Value)
	assert.Equal(t, document.RealID(11), fields[0].RealID)
}

func TestUnmarshalEndpointsMintsLocalIDs(t *testing.T) {
	endpoints, err := UnmarshalEndpoints(`[{"id":1,"title":"a","method":"GET","location":0,"fields":[]}]`)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.NotEmpty(t, endpoints[0].LocalID)
}

func TestUnmarshalEndpointsEmpty(t *testing.T) {
	endpoints, err := UnmarshalEndpoints("")
	require.NoError(t, err)
	assert.Empty(t, endpoints)

	endpoints, err = UnmarshalEndpoints("[]")
	require.NoError(t, err)
	assert.Empty(t, endpoints)
}

func TestMarshalThenUnmarshalKeepsContent(t *testing.T) {
	users := document.NewEndpoint("/users", document.MethodGet).At(0)
	users.RealID = 1
	users.Fields = []document.Field{document.NewField("returns all users", 1).At(0)}
	posts := document.NewEndpoint("/posts", document.MethodPost).At(1)

	serialized, err := MarshalEndpoints([]document.Endpoint{users, posts})
	require.NoError(t, err)

	out, err := UnmarshalEndpoints(serialized)
	require.NoError(t, err)
	assert.True(t, document.EndpointListsEqual([]document.Endpoint{users, posts}, out))
	assert.Equal(t, document.RealID(1), out[0].RealID)
	assert.Equal(t, document.Unknown, out[1].RealID)
}

func TestUnmarshalEndpointsRejectsGarbage(t *testing.T) {
	_, err := UnmarshalEndpoints("{not json")
	assert.Error(t, err)
}
