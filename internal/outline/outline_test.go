package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyTree(t *testing.T) {
	out := Normalize(nil)

	require.Len(t, out, 2)
	assert.Equal(t, KindTitle, out[0].Kind)
	assert.Equal(t, DefaultTitle, out[0].Text)
	assert.Equal(t, KindBody, out[1].Kind)
	assert.Equal(t, "", out[1].Text)
}

func TestNormalizeSingleNodeGetsBody(t *testing.T) {
	out := Normalize([]Node{Title("My API")})

	require.Len(t, out, 2)
	assert.Equal(t, "My API", out[0].Text)
	assert.Equal(t, KindBody, out[1].Kind)
}

func TestNormalizeCoercesKindsByPosition(t *testing.T) {
	// The user deleted the title line; the first body node becomes the
	// title, content untouched.
	out := Normalize([]Node{Body("GET /users"), Body("POST /users"), Title("stray")})

	require.Len(t, out, 3)
	assert.Equal(t, Title("GET /users"), out[0])
	assert.Equal(t, Body("POST /users"), out[1])
	assert.Equal(t, Body("stray"), out[2])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	trees := [][]Node{
		nil,
		{Title("x")},
		{Body("a"), Body("b")},
		{Title("t"), Body("a"), Title("b"), Body("c")},
	}
	for _, tree := range trees {
		once := Normalize(tree)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
		assert.True(t, IsNormalized(once))
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []Node{Body("a")}
	_ = Normalize(in)
	assert.Equal(t, KindBody, in[0].Kind)
}

func TestIsNormalized(t *testing.T) {
	assert.False(t, IsNormalized(nil))
	assert.False(t, IsNormalized([]Node{Title("t")}))
	assert.False(t, IsNormalized([]Node{Body("a"), Body("b")}))
	assert.True(t, IsNormalized([]Node{Title("t"), Body("a")}))
}
