package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNormalizes(t *testing.T) {
	p := New(0, 0)
	require.Equal(t, 1, p.Index)
	require.Equal(t, DefaultPageSize, p.Size)

	p = New(-3, 500)
	require.Equal(t, 1, p.Index)
	require.Equal(t, MaxPageSize, p.Size)
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, New(1, 20).Offset())
	require.Equal(t, 40, New(3, 20).Offset())
}

func TestMetaFor(t *testing.T) {
	meta := New(2, 20).MetaFor(45)
	require.Equal(t, 45, meta.TotalCount)
	require.Equal(t, 3, meta.TotalPages)
	require.True(t, meta.HasPrevious)
	require.True(t, meta.HasNext)

	last := New(3, 20).MetaFor(45)
	require.False(t, last.HasNext)

	empty := New(1, 20).MetaFor(0)
	require.Equal(t, 0, empty.TotalPages)
	require.False(t, empty.HasPrevious)
	require.False(t, empty.HasNext)
}
