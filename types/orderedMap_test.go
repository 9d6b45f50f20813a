package types

import (
	"slices"
	"testing"
)

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string, int]()

	if !m.Set("b", 1) || !m.Set("a", 2) || !m.Set("c", 3) {
		t.Fatal("Set of a new key reported an update")
	}
	if m.Set("a", 20) {
		t.Error("Set of an existing key reported a create")
	}
	if v, ok := m.Get("a"); !ok || v != 20 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get of a missing key reported ok")
	}

	if got := m.Keys(); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("Keys() = %v, want insertion order", got)
	}

	if !m.Delete("a") || m.Delete("a") {
		t.Error("Delete did not remove exactly once")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	var keys []string
	var sum int
	for k, v := range m.All() {
		keys = append(keys, k)
		sum += v
	}
	if !slices.Equal(keys, []string{"b", "c"}) || sum != 4 {
		t.Errorf("All() = %v (sum %d)", keys, sum)
	}

	// stored positions stay valid across unrelated inserts and erases
	m.Set("d", 4)
	m.Delete("b")
	m.Set("c", 30)
	if v, _ := m.Get("c"); v != 30 {
		t.Errorf("Get(c) = %d after neighbour changes", v)
	}
}
