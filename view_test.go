package fixbuf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSharesStorage(t *testing.T) {
	var b Buffer[[20]byte, byte]
	v := b.View()
	v.Set(0, 'H')
	require.Equal(t, byte('H'), b.At(0))
	b.Set(1, 'I')
	require.Equal(t, byte('I'), v.At(1))
}

func TestViewLenErasesCapacity(t *testing.T) {
	var small Buffer[[20]byte, byte]
	var large Buffer[[40]byte, byte]
	require.Equal(t, 20, small.View().Len())
	require.Equal(t, 40, large.View().Len())
}

func TestViewBounds(t *testing.T) {
	var b Buffer[[4]int, int]
	v := b.View()
	requirePanicsIs(t, ErrOutOfRange, func() { v.At(4) })
	requirePanicsIs(t, ErrOutOfRange, func() { v.Set(-1, 0) })
}

func TestViewValuesOrder(t *testing.T) {
	b := Of[[4]int, int](10, 20, 30, 40)
	var got []int
	for v := range b.View().Values() {
		got = append(got, v)
	}
	assert.Equal(t, []int{10, 20, 30, 40}, got)
}

func TestRawWritesThrough(t *testing.T) {
	var b Buffer[[8]byte, byte]
	copy(b.View().Raw(), "abc")
	require.Equal(t, byte('c'), b.At(2))
}

func TestBorrowScopesView(t *testing.T) {
	var b Buffer[[20]byte, byte]
	b.CopyFrom([]byte("HELLO"))
	var leaked View[byte]
	err := b.Borrow(func(v View[byte]) error {
		require.Equal(t, 20, v.Len())
		require.Equal(t, byte('H'), v.At(0))
		leaked = v
		return nil
	})
	require.NoError(t, err)
	requirePanicsIs(t, ErrEscapedView, func() { leaked.At(0) })
	requirePanicsIs(t, ErrEscapedView, func() { leaked.Set(0, 'x') })
	requirePanicsIs(t, ErrEscapedView, func() { leaked.Len() })
	requirePanicsIs(t, ErrEscapedView, func() { leaked.Raw() })
	requirePanicsIs(t, ErrEscapedView, func() {
		for range leaked.Values() {
		}
	})
}

func TestBorrowRevokesOnError(t *testing.T) {
	boom := errors.New("boom")
	var b Buffer[[4]byte, byte]
	var leaked View[byte]
	err := b.Borrow(func(v View[byte]) error {
		leaked = v
		return boom
	})
	require.ErrorIs(t, err, boom)
	requirePanicsIs(t, ErrEscapedView, func() { leaked.Len() })
}

func TestBorrowWritesPersist(t *testing.T) {
	var b Buffer[[4]byte, byte]
	err := b.Borrow(func(v View[byte]) error {
		v.Set(2, 7)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, byte(7), b.At(2))
}

func TestFreshBorrowAfterRevocation(t *testing.T) {
	var b Buffer[[4]byte, byte]
	require.NoError(t, b.Borrow(func(v View[byte]) error { return nil }))
	require.NoError(t, b.Borrow(func(v View[byte]) error {
		v.Set(0, 1)
		return nil
	}))
	require.Equal(t, byte(1), b.View().At(0))
}
