package types

import "iter"

type node[T any] struct {
	next  *node[T]
	prev  *node[T]
	owner *owner[T]

	sentinel bool
	value    T
}

// owner is shared by every node of one list. MoveFrom hands it over to the
// destination so ownership changes without touching the nodes.
type owner[T any] struct {
	list *List[T]
}

// List is a doubly linked sequence bounded by a head and a tail sentinel.
// The zero value is an empty list ready to use. A List must not be copied
// by value once used; use Clone or MoveList instead.
type List[T any] struct {
	head  node[T] // before the first element
	tail  node[T] // End()
	size  int
	owner *owner[T]
}

func NewList[T any]() *List[T] {
	return new(List[T]).init()
}

// NewListSize returns a list holding count zero values.
func NewListSize[T any](count int) *List[T] {
	var zero T
	return NewListFill(count, zero)
}

// NewListFill returns a list holding count copies of value.
func NewListFill[T any](count int, value T) *List[T] {
	if count < 0 {
		panic("types: negative list size")
	}
	l := NewList[T]()
	for i := 0; i < count; i++ {
		l.PushBack(value)
	}
	return l
}

func ListOf[T any](values ...T) *List[T] {
	l := NewList[T]()
	for _, v := range values {
		l.PushBack(v)
	}
	return l
}

// MoveList returns a new list owning every element of src. src is left empty.
func MoveList[T any](src *List[T]) *List[T] {
	l := NewList[T]()
	l.MoveFrom(src)
	return l
}

func (l *List[T]) init() *List[T] {
	l.owner = &owner[T]{list: l}
	l.head = node[T]{sentinel: true, owner: l.owner}
	l.tail = node[T]{sentinel: true, owner: l.owner}
	l.head.next = &l.tail
	l.tail.prev = &l.head
	l.size = 0
	return l
}

func (l *List[T]) lazyInit() {
	if l.head.next == nil {
		l.init()
	}
}

// Clone returns an independent copy of l holding the same elements in order.
func (l *List[T]) Clone() *List[T] {
	c := NewList[T]()
	c.Assign(l)
	return c
}

// CloneFunc is Clone with every element passed through dup, for element
// types that hold references of their own.
func (l *List[T]) CloneFunc(dup func(T) T) *List[T] {
	c := NewList[T]()
	for v := range l.All() {
		c.PushBack(dup(v))
	}
	return c
}

// Assign replaces the contents of l with a copy of src's elements.
func (l *List[T]) Assign(src *List[T]) {
	if l == src {
		return
	}
	l.Clear()
	for v := range src.All() {
		l.PushBack(v)
	}
}

// MoveFrom replaces the contents of l with src's nodes without copying them.
// src is left empty. Positions into src now refer to elements of l.
func (l *List[T]) MoveFrom(src *List[T]) {
	if l == src {
		return
	}
	l.Clear()
	src.lazyInit()
	if src.size == 0 {
		return
	}

	l.head.next = src.head.next
	l.tail.prev = src.tail.prev
	l.head.next.prev = &l.head
	l.tail.prev.next = &l.tail
	l.size = src.size

	src.head.next = &src.tail
	src.tail.prev = &src.head
	src.size = 0

	l.owner, src.owner = src.owner, l.owner
	l.owner.list, src.owner.list = l, src
	l.head.owner, l.tail.owner = l.owner, l.owner
	src.head.owner, src.tail.owner = src.owner, src.owner
}

// Front returns a reference to the first element. It panics on an empty list.
func (l *List[T]) Front() *T {
	if l.Empty() {
		panic("types: Front of empty list")
	}
	return &l.head.next.value
}

// Back returns a reference to the last element. It panics on an empty list.
func (l *List[T]) Back() *T {
	if l.Empty() {
		panic("types: Back of empty list")
	}
	return &l.tail.prev.value
}

func (l *List[T]) Empty() bool {
	return l.size == 0
}

func (l *List[T]) Len() int {
	return l.size
}

func (l *List[T]) Begin() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{l.head.next}
}

// End returns the position one past the last element. It is never nil and
// must not be dereferenced.
func (l *List[T]) End() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{&l.tail}
}

func (l *List[T]) CBegin() ConstIterator[T] {
	return l.Begin().Const()
}

func (l *List[T]) CEnd() ConstIterator[T] {
	return l.End().Const()
}

// Insert links a new element holding value immediately before pos and
// returns its position. No other position is invalidated.
func (l *List[T]) Insert(pos Position[T], value T) Iterator[T] {
	l.lazyInit()
	at := pos.at()
	if at == nil || at.prev == nil {
		panic("types: Insert before invalid position")
	}
	if at.owner != l.owner {
		panic("types: Insert before a position of another list")
	}

	n := &node[T]{value: value, owner: l.owner}
	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
	l.size++

	return Iterator[T]{n}
}

// Erase unlinks the element at pos and returns the position that followed
// it. Only positions referring to the erased element are invalidated.
func (l *List[T]) Erase(pos Position[T]) Iterator[T] {
	l.lazyInit()
	at := pos.at()
	if at == nil || at.sentinel || at.next == nil {
		panic("types: Erase of non-element position")
	}
	if at.owner != l.owner {
		panic("types: Erase of a position of another list")
	}

	next := at.next
	at.prev.next = at.next
	at.next.prev = at.prev
	l.size--

	// for gc
	var zero T
	at.next = nil
	at.prev = nil
	at.owner = nil
	at.value = zero

	return Iterator[T]{next}
}

func (l *List[T]) PushBack(value T) {
	l.Insert(l.End(), value)
}

func (l *List[T]) PushFront(value T) {
	l.Insert(l.Begin(), value)
}

// PopBack removes the last element and returns it. On an empty list it does
// nothing and reports false.
func (l *List[T]) PopBack() (value T, ok bool) {
	if l.Empty() {
		return value, false
	}
	last := l.End().Prev()
	value = last.Value()
	l.Erase(last)
	return value, true
}

// PopFront removes the first element and returns it. On an empty list it
// does nothing and reports false.
func (l *List[T]) PopFront() (value T, ok bool) {
	if l.Empty() {
		return value, false
	}
	first := l.Begin()
	value = first.Value()
	l.Erase(first)
	return value, true
}

// Clear erases every element, leaving l empty.
func (l *List[T]) Clear() {
	l.lazyInit()
	for it := l.Begin(); !it.Equal(l.End()); {
		it = l.Erase(it)
	}
}

// All yields the elements from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it, end := l.CBegin(), l.CEnd(); !it.Equal(end); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward yields the elements from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		begin := l.CBegin()
		for it := l.CEnd(); !it.Equal(begin); {
			it = it.Prev()
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (l *List[T]) Values() []T {
	values := make([]T, 0, l.Len())
	for v := range l.All() {
		values = append(values, v)
	}
	return values
}

func EqualLists[T comparable](a, b *List[T]) bool {
	return EqualListsFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualListsFunc reports whether a and b have the same length and eq holds
// for every pair of elements in order.
func EqualListsFunc[T any](a, b *List[T], eq func(T, T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for ia, ib, end := a.CBegin(), b.CBegin(), a.CEnd(); !ia.Equal(end); ia, ib = ia.Next(), ib.Next() {
		if !eq(ia.Value(), ib.Value()) {
			return false
		}
	}
	return true
}
