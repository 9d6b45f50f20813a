package types

// Position is a place in a List: an element or one of the sentinels.
// It is implemented by Iterator and ConstIterator only.
type Position[T any] interface {
	at() *node[T]
}

// Iterator is a bidirectional position in a List that allows the element to
// be modified. It does not own the node it refers to.
type Iterator[T any] struct {
	n *node[T]
}

// ConstIterator is a read-only Iterator.
type ConstIterator[T any] struct {
	n *node[T]
}

func samePosition[T any](a, b Position[T]) bool {
	return a.at() == b.at()
}

func deref[T any](n *node[T]) *node[T] {
	switch {
	case n == nil:
		panic("types: dereference of nil position")
	case n.sentinel:
		panic("types: dereference of sentinel position")
	case n.next == nil:
		panic("types: dereference of erased position")
	}
	return n
}

func (it Iterator[T]) at() *node[T] {
	return it.n
}

func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{it.n.next}
}

func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{it.n.prev}
}

func (it Iterator[T]) Value() T {
	return deref(it.n).value
}

// Ptr returns a reference to the element, valid until it is erased.
func (it Iterator[T]) Ptr() *T {
	return &deref(it.n).value
}

func (it Iterator[T]) Set(value T) {
	deref(it.n).value = value
}

// Equal reports whether it and other refer to the same node.
func (it Iterator[T]) Equal(other Position[T]) bool {
	return samePosition[T](it, other)
}

func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it.n}
}

func (it ConstIterator[T]) at() *node[T] {
	return it.n
}

func (it ConstIterator[T]) Next() ConstIterator[T] {
	return ConstIterator[T]{it.n.next}
}

func (it ConstIterator[T]) Prev() ConstIterator[T] {
	return ConstIterator[T]{it.n.prev}
}

func (it ConstIterator[T]) Value() T {
	return deref(it.n).value
}

// Equal reports whether it and other refer to the same node.
func (it ConstIterator[T]) Equal(other Position[T]) bool {
	return samePosition[T](it, other)
}
