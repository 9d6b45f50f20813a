package types

import (
	"slices"
	"strings"
	"testing"
)

func TestQueue(t *testing.T) {
	t.Run("FIFO", func(t *testing.T) {
		var q Queue[int]
		q.Push(1)
		q.Push(2)
		q.Push(3)

		if q.Len() != 3 || q.Empty() {
			t.Fatalf("Len() = %d, Empty() = %v", q.Len(), q.Empty())
		}
		if *q.Front() != 1 || *q.Back() != 3 {
			t.Errorf("Front/Back = %d/%d, want 1/3", *q.Front(), *q.Back())
		}

		var got []int
		for !q.Empty() {
			v, _ := q.Pop()
			got = append(got, v)
		}
		if !slices.Equal(got, []int{1, 2, 3}) {
			t.Errorf("pop order = %v", got)
		}
	})

	t.Run("PopEmpty", func(t *testing.T) {
		q := NewQueue[string]()
		if _, ok := q.Pop(); ok {
			t.Error("Pop on empty reported ok")
		}
		if q.Len() != 0 {
			t.Errorf("Len() = %d after Pop on empty", q.Len())
		}
		mustPanic(t, "Front on empty", func() { q.Front() })
	})

	t.Run("Equal", func(t *testing.T) {
		a, b := NewQueue[int](), NewQueue[int]()
		for _, v := range []int{1, 2, 3} {
			a.Push(v)
			b.Push(v)
		}
		if !EqualQueues(a, b) {
			t.Fatal("queues with the same pushes are not equal")
		}

		b.Pop()
		if EqualQueues(a, b) || EqualQueues(b, a) {
			t.Error("queues of different length compare equal")
		}
	})

	t.Run("EqualFunc", func(t *testing.T) {
		a, b := NewQueue[string](), NewQueue[string]()
		a.Push("Go")
		b.Push("go")
		if EqualQueues(a, b) {
			t.Error("case-sensitive compare matched")
		}
		if !EqualQueuesFunc(a, b, strings.EqualFold) {
			t.Error("case-insensitive compare did not match")
		}
	})

	t.Run("CopyAndMove", func(t *testing.T) {
		src := NewQueue[int]()
		src.Push(1)
		src.Push(2)

		cp := src.Clone()
		cp.Push(3)
		if src.Len() != 2 || cp.Len() != 3 {
			t.Fatalf("clone not independent: src %d, copy %d", src.Len(), cp.Len())
		}

		moved := MoveQueue(src)
		if !src.Empty() || moved.Len() != 2 {
			t.Fatalf("after move: src %d, dst %d", src.Len(), moved.Len())
		}

		cp.Assign(moved)
		if !EqualQueues(cp, moved) {
			t.Error("Assign did not copy the elements")
		}

		cp.MoveFrom(cp)
		if cp.Len() != 2 {
			t.Errorf("self move changed the queue: Len() = %d", cp.Len())
		}

		if got := slices.Collect(moved.All()); !slices.Equal(got, []int{1, 2}) {
			t.Errorf("All() = %v", got)
		}
	})
}
