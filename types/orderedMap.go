package types

import "iter"

type entry[K comparable, V any] struct {
	Key   K
	Value V
}

type OrderedMap[K comparable, V any] struct {
	kv map[K]Iterator[entry[K, V]]
	ll List[entry[K, V]]
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		kv: make(map[K]Iterator[entry[K, V]]),
	}
}

func (m *OrderedMap[K, V]) Get(key K) (value V, ok bool) {
	it, ok := m.kv[key]
	if ok {
		value = it.Value().Value
	}

	return
}

func (m *OrderedMap[K, V]) Set(key K, value V) bool {
	if it, alreadyExist := m.kv[key]; alreadyExist {
		it.Ptr().Value = value
		return false
	}

	m.kv[key] = m.ll.Insert(m.ll.End(), entry[K, V]{Key: key, Value: value})
	return true
}

func (m *OrderedMap[K, V]) Len() int {
	return m.ll.Len()
}

func (m *OrderedMap[K, V]) Keys() (keys []K) {
	keys = make([]K, 0, m.Len())
	for e := range m.ll.All() {
		keys = append(keys, e.Key)
	}

	return
}

// All yields the entries in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.ll.All() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (m *OrderedMap[K, V]) Delete(key K) (didDelete bool) {
	it, ok := m.kv[key]
	if ok {
		m.ll.Erase(it)
		delete(m.kv, key)
	}

	return ok
}
