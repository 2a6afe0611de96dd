package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchTableInterning(t *testing.T) {
	pt := NewPatchTable()

	i1, err := pt.Intern("8109E840 2400", "Game One")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), i1)

	// Identical payload collapses to the same entry
	i2, err := pt.Intern("8109E840 2400", "Game Two")
	require.NoError(t, err)
	assert.Equal(t, i1, i2)
	assert.Equal(t, 1, pt.Len())
	assert.Equal(t, []string{"Game One", "Game Two"}, pt.UsedBy(1))

	i3, err := pt.Intern("D0064F30 0000", "Game Three")
	require.NoError(t, err)
	assert.Equal(t, uint8(2), i3)
	assert.Equal(t, 2, pt.Len())
}

func TestPatchTableReservedSlot(t *testing.T) {
	pt := NewPatchTable()
	assert.Equal(t, 0, pt.Len())
	assert.Equal(t, []string{""}, pt.Payloads())
	assert.Nil(t, pt.UsedBy(0))
	assert.Nil(t, pt.UsedBy(99))
}

func TestPatchTableCapacity(t *testing.T) {
	pt := NewPatchTable()
	for i := 0; i < MaxPatches; i++ {
		_, err := pt.Intern(fmt.Sprintf("payload %d", i), "game")
		require.NoError(t, err)
	}
	assert.Equal(t, MaxPatches, pt.Len())

	// Re-interning an existing payload still works at capacity
	idx, err := pt.Intern("payload 0", "another game")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), idx)

	// The 32nd distinct payload does not fit the 5-bit index
	_, err = pt.Intern("one payload too many", "game")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}
