package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeap_ExtendIsContiguous(t *testing.T) {
	h := NewHeap(1 << 16)

	base, err := h.Extend(64)
	require.NoError(t, err)
	require.Equal(t, 0, base)

	base, err = h.Extend(128)
	require.NoError(t, err)
	require.Equal(t, 64, base, "second region must start where the first ended")
	require.Len(t, h.Bytes(), 192)
}

func TestHeap_ExtendPreservesContents(t *testing.T) {
	h := NewHeap(1 << 20)
	_, err := h.Extend(16)
	require.NoError(t, err)
	copy(h.Bytes(), "0123456789abcdef")

	// Force several reallocations.
	for range 10 {
		_, err = h.Extend(4096)
		require.NoError(t, err)
	}
	require.Equal(t, "0123456789abcdef", string(h.Bytes()[:16]))
	for _, b := range h.Bytes()[16:] {
		require.Zero(t, b, "new regions must be zeroed")
	}
}

func TestHeap_Limit(t *testing.T) {
	h := NewHeap(100)

	_, err := h.Extend(64)
	require.NoError(t, err)

	_, err = h.Extend(64)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 64, h.Len(), "failed extension must not change the arena")

	base, err := h.Extend(36)
	require.NoError(t, err)
	require.Equal(t, 64, base)
	require.LessOrEqual(t, cap(h.Bytes()), 100)
}

func TestHeap_DefaultLimit(t *testing.T) {
	require.Equal(t, DefaultMaxBytes, NewHeap(0).Max())
}

func TestHeap_BadSize(t *testing.T) {
	h := NewHeap(0)
	_, err := h.Extend(0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = h.Extend(-8)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestFailing(t *testing.T) {
	_, err := Failing{}.Extend(8)
	require.ErrorIs(t, err, ErrExhausted)

	custom := errors.New("no sbrk today")
	_, err = Failing{Err: custom}.Extend(8)
	require.ErrorIs(t, err, custom)
	require.Empty(t, Failing{}.Bytes())
}
