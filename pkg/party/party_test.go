package party

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDSlice(t *testing.T) {
	ids := NewIDSlice([]ID{"c", "a", "b", "a"})
	require.Equal(t, IDSlice{"a", "b", "c"}, ids)
}

func TestContains(t *testing.T) {
	ids := NewIDSlice([]ID{"a", "b", "c"})
	require.True(t, ids.Contains("a"))
	require.True(t, ids.Contains("a", "c"))
	require.False(t, ids.Contains("d"))
	require.False(t, ids.Contains("a", "d"))
	require.True(t, ids.Contains())
}
