package types

import "iter"

// Queue is a first-in first-out adapter over a List.
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	c List[T]
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// MoveQueue returns a new queue owning every element of src. src is left empty.
func MoveQueue[T any](src *Queue[T]) *Queue[T] {
	q := NewQueue[T]()
	q.MoveFrom(src)
	return q
}

func (q *Queue[T]) Front() *T { return q.c.Front() }
func (q *Queue[T]) Back() *T  { return q.c.Back() }

func (q *Queue[T]) Empty() bool { return q.c.Empty() }
func (q *Queue[T]) Len() int    { return q.c.Len() }

func (q *Queue[T]) Push(value T) { q.c.PushBack(value) }

// Pop removes the front element. On an empty queue it does nothing.
func (q *Queue[T]) Pop() (T, bool) { return q.c.PopFront() }

func (q *Queue[T]) All() iter.Seq[T] { return q.c.All() }

func (q *Queue[T]) Clone() *Queue[T] {
	c := NewQueue[T]()
	c.Assign(q)
	return c
}

func (q *Queue[T]) Assign(src *Queue[T]) {
	q.c.Assign(&src.c)
}

func (q *Queue[T]) MoveFrom(src *Queue[T]) {
	q.c.MoveFrom(&src.c)
}

func EqualQueues[T comparable](a, b *Queue[T]) bool {
	return EqualLists(&a.c, &b.c)
}

func EqualQueuesFunc[T any](a, b *Queue[T], eq func(T, T) bool) bool {
	return EqualListsFunc(&a.c, &b.c, eq)
}
