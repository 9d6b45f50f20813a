package types_test

import (
	"fmt"

	"listqueue/types"
)

func ExampleList() {
	l := types.NewListSize[int](3)
	l.PushBack(7)
	l.PushFront(1)

	for it := l.Begin(); !it.Equal(l.End()); it = it.Next() {
		fmt.Print(it.Value(), " ")
	}
	fmt.Println(l.Len())
	// Output: 1 0 0 0 7 5
}

func ExampleList_Erase() {
	l := types.ListOf("a", "b", "c")
	it := l.Erase(l.Begin().Next())
	fmt.Println(it.Value(), l.Values())
	// Output: c [a c]
}

func ExampleMoveList() {
	src := types.ListOf(1, 2, 3)
	dst := types.MoveList(src)
	fmt.Println(dst.Values(), src.Len(), src.Begin().Equal(src.End()))
	// Output: [1 2 3] 0 true
}

func ExampleQueue() {
	var q types.Queue[string]
	q.Push("first")
	q.Push("second")
	v, _ := q.Pop()
	fmt.Println(v, *q.Front(), q.Len())
	// Output: first second 1
}
