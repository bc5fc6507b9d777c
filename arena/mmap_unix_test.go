//go:build linux || darwin

package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestMmap_ExtendDoesNotMove(t *testing.T) {
	m, err := NewMmap(1 << 20)
	require.NoError(t, err)
	defer m.Close()

	base, err := m.Extend(64)
	require.NoError(t, err)
	require.Equal(t, 0, base)

	first := unsafe.Pointer(&m.Bytes()[0])
	m.Bytes()[0] = 0x5A

	for range 8 {
		_, err = m.Extend(32 << 10)
		require.NoError(t, err)
	}
	require.Equal(t, first, unsafe.Pointer(&m.Bytes()[0]), "mmap arena must not relocate")
	require.Equal(t, byte(0x5A), m.Bytes()[0])

	// Every handed-out byte is writable.
	b := m.Bytes()
	b[len(b)-1] = 0xA5
}

func TestMmap_Exhausted(t *testing.T) {
	m, err := NewMmap(8192)
	require.NoError(t, err)
	defer m.Close()

	reserved := m.Reserved()
	_, err = m.Extend(reserved)
	require.NoError(t, err)

	_, err = m.Extend(8)
	require.ErrorIs(t, err, ErrExhausted)
	require.Len(t, m.Bytes(), reserved)
}

func TestMmap_Close(t *testing.T) {
	m, err := NewMmap(4096)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")

	_, err = m.Extend(8)
	require.ErrorIs(t, err, ErrClosed)
	require.Nil(t, m.Bytes())
}
