package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldList(values ...string) []Field {
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = NewField(v, 0).At(i)
	}
	return fields
}

func values(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}
	return out
}

func assertDenseLocations(t *testing.T, fields []Field) {
	t.Helper()
	for i, f := range fields {
		assert.Equal(t, i, f.Location, "location at index %d", i)
	}
}

func TestInsertAtMiddleRenumbers(t *testing.T) {
	list := fieldList("A", "B")

	out := InsertAt(list, NewField("C", 0), 1)

	assert.Equal(t, []string{"A", "C", "B"}, values(out))
	assertDenseLocations(t, out)
}

func TestInsertAtLengthAppends(t *testing.T) {
	list := fieldList("A", "B")

	out := InsertAt(list, NewField("C", 0), 2)

	assert.Equal(t, []string{"A", "B", "C"}, values(out))
	assertDenseLocations(t, out)
}

func TestInsertAtClampsOutOfRange(t *testing.T) {
	list := fieldList("A")

	low := InsertAt(list, NewField("B", 0), -3)
	high := InsertAt(list, NewField("C", 0), 99)

	assert.Equal(t, []string{"B", "A"}, values(low))
	assert.Equal(t, []string{"A", "C"}, values(high))
}

func TestInsertAtDoesNotMutateInput(t *testing.T) {
	list := fieldList("A", "B")

	_ = InsertAt(list, NewField("C", 0), 0)

	assert.Equal(t, []string{"A", "B"}, values(list))
	assertDenseLocations(t, list)
}

func TestRemoveAtRenumbers(t *testing.T) {
	list := fieldList("A", "B", "C")

	out := RemoveAt(list, 1)

	assert.Equal(t, []string{"A", "C"}, values(out))
	assertDenseLocations(t, out)
}

func TestRemoveAtOutOfRangeIsNoOp(t *testing.T) {
	list := fieldList("A", "B")

	assert.Equal(t, values(list), values(RemoveAt(list, -1)))
	assert.Equal(t, values(list), values(RemoveAt(list, 2)))
	assert.Equal(t, values(list), values(RemoveAt(list, 99)))
}

func TestMoveFromTo(t *testing.T) {
	list := fieldList("A", "B", "C", "D")

	out := MoveFromTo(list, 0, 2)

	assert.Equal(t, []string{"B", "C", "A", "D"}, values(out))
	assertDenseLocations(t, out)
}

func TestMoveFromToIsRemoveThenInsert(t *testing.T) {
	// Moving 2 to 5 in a six-element list must match removing first and
	// inserting into the shortened list, not inserting before removal.
	list := fieldList("A", "B", "C", "D", "E", "F")

	out := MoveFromTo(list, 2, 5)

	assert.Equal(t, []string{"A", "B", "D", "E", "F", "C"}, values(out))
	assertDenseLocations(t, out)
}

func TestMoveFromToOutOfRangeFromIsNoOp(t *testing.T) {
	list := fieldList("A", "B")

	assert.Equal(t, values(list), values(MoveFromTo(list, 5, 0)))
}

func TestReplaceAt(t *testing.T) {
	list := fieldList("A", "B")
	replacement := list[1]
	replacement.Value = "B2"

	out := ReplaceAt(list, replacement, 1)

	assert.Equal(t, []string{"A", "B2"}, values(out))
	assertDenseLocations(t, out)
	assert.Equal(t, "B", list[1].Value)
}

func TestInsertAtWorksForEndpoints(t *testing.T) {
	endpoints := []Endpoint{NewEndpoint("users", MethodGet).At(0)}

	out := InsertAt(endpoints, NewEndpoint("posts", MethodPost), 0)

	require.Len(t, out, 2)
	assert.Equal(t, "posts", out[0].Title)
	assert.Equal(t, 0, out[0].Location)
	assert.Equal(t, "users", out[1].Title)
	assert.Equal(t, 1, out[1].Location)
}
