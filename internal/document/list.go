package document

// Ordered is implemented by records that track their position among
// siblings. At returns a copy of the record placed at the given location.
type Ordered[T any] interface {
	At(location int) T
}

// Renumber returns a copy of items with locations rewritten to the dense
// range 0..n-1.
func Renumber[T Ordered[T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.At(i)
	}
	return out
}

// InsertAt returns a copy of items with item inserted at location and every
// sibling renumbered. A location of len(items) appends; locations outside
// 0..len(items) are clamped into that range.
func InsertAt[T Ordered[T]](items []T, item T, location int) []T {
	if location < 0 {
		location = 0
	}
	if location > len(items) {
		location = len(items)
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:location]...)
	out = append(out, item)
	out = append(out, items[location:]...)
	return Renumber(out)
}

// RemoveAt returns a copy of items with the record at location removed and
// the remainder renumbered. An out-of-range location returns the original
// list unchanged; callers that need precision validate against the current
// length first.
func RemoveAt[T Ordered[T]](items []T, location int) []T {
	if location < 0 || location >= len(items) {
		return items
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:location]...)
	out = append(out, items[location+1:]...)
	return Renumber(out)
}

// ReplaceAt returns a copy of items with the record at location replaced.
// An out-of-range location returns the original list unchanged.
func ReplaceAt[T Ordered[T]](items []T, item T, location int) []T {
	if location < 0 || location >= len(items) {
		return items
	}
	out := make([]T, len(items))
	copy(out, items)
	out[location] = item
	return Renumber(out)
}

// MoveFromTo returns a copy of items with the record at from removed and
// reinserted at to, where to indexes the gap-closed list left by the
// removal. Out-of-range from is a no-op.
func MoveFromTo[T Ordered[T]](items []T, from, to int) []T {
	if from < 0 || from >= len(items) {
		return items
	}
	moved := items[from]
	rest := make([]T, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	return InsertAt(rest, moved, to)
}
