package fixbuf

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sync"
	"unsafe"
)

var (
	ErrNotArrayOf  = errors.New("fixbuf: A is not a non-empty array of T")
	ErrOutOfRange  = errors.New("fixbuf: index out of range")
	ErrEscapedView = errors.New("fixbuf: view used outside its borrow scope")
)

// Buffer is a fixed-capacity run of T stored inline. A must be the array
// type [N]T; the array is the struct's only field, so a Buffer placed inside
// another struct, on the stack, or in a slice of structs carries its N slots
// right there, with no separate allocation and no pointer to chase. Capacity
// is fixed for the life of the owner: there is no resizing, no partial-fill
// state, and the zero value already holds N zero-valued elements.
//
// One generic definition serves every (T, N) pair:
//
//	type Callsign struct {
//		Name fixbuf.Buffer[[20]byte, byte]
//		Site fixbuf.Buffer[[40]byte, byte]
//	}
//
// Instantiating with an A that is not an array of T is a programming error
// and panics with ErrNotArrayOf on first use.
type Buffer[A, T any] struct {
	data A
}

type layoutKey struct {
	arr, elem reflect.Type
}

// validated (A, T) pairings -> N, keyed per instantiation like a codec plan
var layouts sync.Map

func lenOf[A, T any]() int {
	at := reflect.TypeOf((*A)(nil)).Elem()
	et := reflect.TypeOf((*T)(nil)).Elem()
	key := layoutKey{arr: at, elem: et}
	if n, ok := layouts.Load(key); ok {
		return n.(int)
	}
	if at.Kind() != reflect.Array || at.Elem() != et || at.Len() == 0 {
		panic(fmt.Errorf("%w: got %v over %v", ErrNotArrayOf, at, et))
	}
	layouts.Store(key, at.Len())
	return at.Len()
}

// Of builds a Buffer with its leading slots set from vals; remaining slots
// stay zero-valued. Panics if more values are given than the buffer holds.
func Of[A, T any](vals ...T) Buffer[A, T] {
	var b Buffer[A, T]
	n := lenOf[A, T]()
	if len(vals) > n {
		panic(fmt.Errorf("%w: %d values into %d slots", ErrOutOfRange, len(vals), n))
	}
	copy(b.slots(), vals)
	return b
}

// slots reinterprets the inline array as a []T of length N. Everything else
// routes through it; lenOf has already proven the layout matches.
func (b *Buffer[A, T]) slots() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data)), lenOf[A, T]())
}

// Len returns the capacity N. It is a property of the instantiation, not of
// any particular value.
func (b *Buffer[A, T]) Len() int { return lenOf[A, T]() }

// At returns the element at index i. i outside [0, Len()) panics with
// ErrOutOfRange at the point of access; nothing is clamped.
func (b *Buffer[A, T]) At(i int) T {
	s := b.slots()
	checkIndex(i, len(s))
	return s[i]
}

// Set stores v at index i, in place. Same bounds policy as At.
func (b *Buffer[A, T]) Set(i int, v T) {
	s := b.slots()
	checkIndex(i, len(s))
	s[i] = v
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, i, n))
	}
}

// Data exposes the backing array. Indexing through the returned pointer
// with a constant index is checked by the compiler: b.Data()[25] on a
// *[20]byte does not build. This is the path for callers that want the
// bounds check to happen before the program runs.
func (b *Buffer[A, T]) Data() *A {
	lenOf[A, T]()
	return &b.data
}

// Fill sets every slot to v.
func (b *Buffer[A, T]) Fill(v T) {
	s := b.slots()
	for i := range s {
		s[i] = v
	}
}

// CopyFrom copies min(len(src), N) elements into the front of the buffer
// and reports how many were copied. Slots past the copied run keep their
// previous values.
func (b *Buffer[A, T]) CopyFrom(src []T) int {
	return copy(b.slots(), src)
}

// Values iterates the N elements in index order. The sequence is lazy,
// finite and restartable; ranging over it does not mutate the buffer.
func (b *Buffer[A, T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range b.slots() {
			if !yield(v) {
				return
			}
		}
	}
}

// All is Values with the index.
func (b *Buffer[A, T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range b.slots() {
			if !yield(i, v) {
				return
			}
		}
	}
}
