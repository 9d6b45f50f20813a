// Package registry keeps named string queues behind per-shard locks.
// Queues and lists are not safe for concurrent use on their own; every
// access goes through the owning shard's mutex.
package registry

import (
	"errors"
	"slices"
	"sync"

	"github.com/spaolacci/murmur3"

	"listqueue/types"
)

var (
	ErrNoQueue   = errors.New("no such queue")
	ErrEmptyName = errors.New("queue name is empty")
)

type shard struct {
	mu     sync.Mutex
	queues *types.OrderedMap[string, *types.Queue[string]]
}

type Registry struct {
	shards []*shard
}

func New(shards int) *Registry {
	if shards < 1 {
		shards = 1
	}
	r := &Registry{shards: make([]*shard, shards)}
	for i := range r.shards {
		r.shards[i] = &shard{queues: types.NewOrderedMap[string, *types.Queue[string]]()}
	}
	return r
}

func (r *Registry) shardIndex(name string) int {
	return int(murmur3.Sum64([]byte(name)) % uint64(len(r.shards)))
}

func (s *shard) queue(name string, create bool) (*types.Queue[string], bool) {
	q, ok := s.queues.Get(name)
	if !ok && create {
		q = types.NewQueue[string]()
		s.queues.Set(name, q)
		ok = true
	}
	return q, ok
}

// Do runs fn on the named queue while holding its shard lock. With create
// set a missing queue is created first, otherwise ErrNoQueue is returned.
func (r *Registry) Do(name string, create bool, fn func(q *types.Queue[string])) error {
	if name == "" {
		return ErrEmptyName
	}
	s := r.shards[r.shardIndex(name)]
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queue(name, create)
	if !ok {
		return ErrNoQueue
	}
	fn(q)
	return nil
}

func (r *Registry) Drop(name string) bool {
	s := r.shards[r.shardIndex(name)]
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queues.Delete(name)
}

// pair locks the shards of both names in index order and runs fn with the
// source queue and the destination queue, creating the destination.
func (r *Registry) pair(src, dst string, createDst bool, fn func(from, to *types.Queue[string])) error {
	if src == "" || dst == "" {
		return ErrEmptyName
	}
	i, j := r.shardIndex(src), r.shardIndex(dst)
	first, second := min(i, j), max(i, j)
	r.shards[first].mu.Lock()
	defer r.shards[first].mu.Unlock()
	if second != first {
		r.shards[second].mu.Lock()
		defer r.shards[second].mu.Unlock()
	}

	from, ok := r.shards[i].queue(src, false)
	if !ok {
		return ErrNoQueue
	}
	to, ok := r.shards[j].queue(dst, createDst)
	if !ok {
		return ErrNoQueue
	}
	fn(from, to)
	return nil
}

// Copy replaces dst with an independent copy of src.
func (r *Registry) Copy(src, dst string) error {
	return r.pair(src, dst, true, func(from, to *types.Queue[string]) {
		to.Assign(from)
	})
}

// Move hands every element of src to dst without copying; src stays
// registered and empty.
func (r *Registry) Move(src, dst string) error {
	return r.pair(src, dst, true, func(from, to *types.Queue[string]) {
		to.MoveFrom(from)
	})
}

func (r *Registry) Compare(a, b string) (equal bool, err error) {
	err = r.pair(a, b, false, func(qa, qb *types.Queue[string]) {
		equal = types.EqualQueues(qa, qb)
	})
	return equal, err
}

// Names returns every registered queue name in sorted order.
func (r *Registry) Names() []string {
	var names []string
	for _, s := range r.shards {
		s.mu.Lock()
		names = append(names, s.queues.Keys()...)
		s.mu.Unlock()
	}
	slices.Sort(names)
	return names
}
