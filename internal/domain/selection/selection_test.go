package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleRoundTrip(t *testing.T) {
	empty := NewSet()

	added := empty.Toggle(7)
	assert.True(t, added.Contains(7))
	assert.Equal(t, 1, added.Len())

	removed := added.Toggle(7)
	assert.False(t, removed.Contains(7))
	assert.Equal(t, 0, removed.Len())
	assert.True(t, removed.Equal(empty))
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	base := NewSet().Toggle(1).Toggle(2)

	derived := base.Toggle(3)

	assert.Equal(t, 2, base.Len())
	assert.False(t, base.Contains(3))
	assert.Equal(t, 3, derived.Len())
}

func TestIDsAreSorted(t *testing.T) {
	set := NewSet().Toggle(9).Toggle(1).Toggle(5)
	assert.Equal(t, []int{1, 5, 9}, set.IDs())
}

func TestEqualIgnoresInsertionOrder(t *testing.T) {
	a := NewSet().Toggle(1).Toggle(2)
	b := NewSet().Toggle(2).Toggle(1)
	assert.True(t, a.Equal(b))

	c := b.Toggle(3)
	assert.False(t, a.Equal(c))
}
