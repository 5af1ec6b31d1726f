package fixbuf

import "iter"

// View is a size-erased window over a Buffer's slots: a runtime length plus
// a reference to the same storage, no copy. It owns nothing and keeps
// nothing alive on its own terms; the buffer's owner must outlive every
// read or write through the view. Algorithms written against View work
// unchanged over buffers of any capacity.
//
// A View must not be stored or returned beyond the scope it was borrowed
// in. Plain View() relies on the doc contract for that; Borrow enforces it
// with a revocation check on every access.
type View[T any] struct {
	data  []T
	scope *scope
}

// scope marks a callback-bounded borrow. Once done is set, the view and
// every copy of it refuse further access.
type scope struct {
	done bool
}

// View borrows all N slots of the buffer. The pointer receiver is load
// bearing: the conversion must see the caller's own storage, never a
// by-value copy the compiler is about to discard, and Go will not take the
// address of an rvalue temporary for it. The returned view aliases the
// buffer for reads and writes and is valid only while the owner is; callers
// that want misuse caught at runtime should use Borrow instead.
func (b *Buffer[A, T]) View() View[T] {
	return View[T]{data: b.slots()}
}

// Borrow runs fn with a view of the buffer and revokes the view when fn
// returns. A copy of the view leaked out of fn panics with ErrEscapedView
// on its next access, read or write. The error from fn is returned as is.
func (b *Buffer[A, T]) Borrow(fn func(View[T]) error) error {
	sc := &scope{}
	defer func() { sc.done = true }()
	return fn(View[T]{data: b.slots(), scope: sc})
}

func (v View[T]) live() []T {
	if v.scope != nil && v.scope.done {
		panic(ErrEscapedView)
	}
	return v.data
}

// Len returns the number of elements visible through the view. This is the
// originating buffer's N, observed as a runtime value.
func (v View[T]) Len() int { return len(v.live()) }

// At returns the element at index i. Same bounds policy as Buffer.At.
func (v View[T]) At(i int) T {
	s := v.live()
	checkIndex(i, len(s))
	return s[i]
}

// Set writes v through the view into the underlying buffer.
func (v View[T]) Set(i int, val T) {
	s := v.live()
	checkIndex(i, len(s))
	s[i] = val
}

// Values iterates the visible elements in index order; lazy and
// restartable, no mutation.
func (v View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range v.live() {
			if !yield(e) {
				return
			}
		}
	}
}

// Raw hands back the underlying slice with no further guarding. Opt-in
// escape hatch for interop with APIs that take []T; the caller must ensure
// the owning buffer outlives every use of the slice.
func (v View[T]) Raw() []T { return v.live() }
