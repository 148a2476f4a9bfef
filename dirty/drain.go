package dirty

import "container/heap"

// Completion reports whether a drain finished normally or stalled because
// some keys never reached in-degree zero (a cycle among the seed set).
type Completion struct {
	// Stalled is true if the drain stalled.
	Stalled bool
	// Remaining is the number of keys that could not be yielded. Only
	// meaningful when Stalled is true.
	Remaining int
}

// Sorted yields dirty keys in topological order using Kahn's algorithm:
// dependencies are yielded before their dependents. Keys participating in a
// cycle never reach in-degree zero and are never yielded; exhausting the
// iterator in that case reports Stalled via Completion.
//
// Duplicate seeds are deduplicated on construction; each key is yielded at
// most once. Iteration order among simultaneously-ready keys is
// unspecified and may vary across runs.
type Sorted[K comparable] struct {
	graph    *Graph[K]
	channel  Channel
	queue    []K
	inDegree map[K]int
	stalled  bool
}

// NewSorted builds a Sorted drain over seeds, restricted to the dependency
// edges among the seed set itself.
func NewSorted[K comparable](seeds []K, graph *Graph[K], channel Channel) *Sorted[K] {
	inDegree := make(map[K]int, len(seeds))
	unique := make([]K, 0, len(seeds))
	for _, k := range seeds {
		if _, ok := inDegree[k]; !ok {
			inDegree[k] = 0
			unique = append(unique, k)
		}
	}

	for _, k := range unique {
		for _, dep := range graph.Dependencies(k, channel) {
			if _, ok := inDegree[dep]; ok {
				inDegree[k]++
			}
		}
	}

	queue := make([]K, 0, len(unique))
	for _, k := range unique {
		if inDegree[k] == 0 {
			queue = append(queue, k)
		}
	}

	return &Sorted[K]{graph: graph, channel: channel, queue: queue, inDegree: inDegree}
}

// Remaining returns an upper bound on the number of keys yet to be yielded.
func (d *Sorted[K]) Remaining() int {
	return len(d.inDegree)
}

// IsStalled reports whether the drain has stalled due to a cycle. Only
// meaningful once the drain has been exhausted.
func (d *Sorted[K]) IsStalled() bool {
	return d.stalled
}

// Completion reports whether the drain completed or stalled. Only
// meaningful once the drain has been exhausted.
func (d *Sorted[K]) Completion() Completion {
	if d.stalled {
		return Completion{Stalled: true, Remaining: d.Remaining()}
	}
	return Completion{}
}

// Next yields the next key in topological order, or ok=false once exhausted.
func (d *Sorted[K]) Next() (key K, ok bool) {
	if len(d.queue) == 0 {
		if len(d.inDegree) > 0 {
			d.stalled = true
		}
		return key, false
	}

	key = d.queue[0]
	d.queue = d.queue[1:]
	delete(d.inDegree, key)

	for _, dependent := range d.graph.Dependents(key, d.channel) {
		if deg, ok := d.inDegree[dependent]; ok {
			deg--
			d.inDegree[dependent] = deg
			if deg == 0 {
				d.queue = append(d.queue, dependent)
			}
		}
	}

	return key, true
}

// CollectWithCompletion drains the iterator to exhaustion and returns the
// yielded keys together with the completion status.
func (d *Sorted[K]) CollectWithCompletion() ([]K, Completion) {
	out := make([]K, 0, d.Remaining())
	for {
		k, ok := d.Next()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out, d.Completion()
}

// orderedHeap is a min-heap of K ordered by less.
type orderedHeap[K comparable] struct {
	items []K
	less  func(a, b K) bool
}

func (h *orderedHeap[K]) Len() int            { return len(h.items) }
func (h *orderedHeap[K]) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *orderedHeap[K]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *orderedHeap[K]) Push(x any)          { h.items = append(h.items, x.(K)) }
func (h *orderedHeap[K]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// SortedDeterministic is the deterministic variant of Sorted: when multiple
// keys are simultaneously ready, it yields the smallest key first (per
// less), giving a total order stable across runs for identical inputs.
type SortedDeterministic[K comparable] struct {
	graph    *Graph[K]
	channel  Channel
	ready    *orderedHeap[K]
	inDegree map[K]int
	stalled  bool
}

// NewSortedDeterministic builds a SortedDeterministic drain over seeds,
// using less to break ties among simultaneously-ready keys.
func NewSortedDeterministic[K comparable](seeds []K, graph *Graph[K], channel Channel, less func(a, b K) bool) *SortedDeterministic[K] {
	inDegree := make(map[K]int, len(seeds))
	unique := make([]K, 0, len(seeds))
	for _, k := range seeds {
		if _, ok := inDegree[k]; !ok {
			inDegree[k] = 0
			unique = append(unique, k)
		}
	}

	for _, k := range unique {
		for _, dep := range graph.Dependencies(k, channel) {
			if _, ok := inDegree[dep]; ok {
				inDegree[k]++
			}
		}
	}

	ready := &orderedHeap[K]{less: less}
	for _, k := range unique {
		if inDegree[k] == 0 {
			ready.items = append(ready.items, k)
		}
	}
	heap.Init(ready)

	return &SortedDeterministic[K]{graph: graph, channel: channel, ready: ready, inDegree: inDegree}
}

// Remaining returns an upper bound on the number of keys yet to be yielded.
func (d *SortedDeterministic[K]) Remaining() int {
	return len(d.inDegree)
}

// IsStalled reports whether the drain has stalled due to a cycle. Only
// meaningful once the drain has been exhausted.
func (d *SortedDeterministic[K]) IsStalled() bool {
	return d.stalled
}

// Completion reports whether the drain completed or stalled. Only
// meaningful once the drain has been exhausted.
func (d *SortedDeterministic[K]) Completion() Completion {
	if d.stalled {
		return Completion{Stalled: true, Remaining: d.Remaining()}
	}
	return Completion{}
}

// Next yields the smallest ready key, or ok=false once exhausted.
func (d *SortedDeterministic[K]) Next() (key K, ok bool) {
	if d.ready.Len() == 0 {
		if len(d.inDegree) > 0 {
			d.stalled = true
		}
		return key, false
	}

	key = heap.Pop(d.ready).(K)
	delete(d.inDegree, key)

	for _, dependent := range d.graph.Dependents(key, d.channel) {
		if deg, ok := d.inDegree[dependent]; ok {
			deg--
			d.inDegree[dependent] = deg
			if deg == 0 {
				heap.Push(d.ready, dependent)
			}
		}
	}

	return key, true
}

// CollectWithCompletion drains the iterator to exhaustion and returns the
// yielded keys together with the completion status.
func (d *SortedDeterministic[K]) CollectWithCompletion() ([]K, Completion) {
	out := make([]K, 0, d.Remaining())
	for {
		k, ok := d.Next()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out, d.Completion()
}

// DrainSorted drains channel's dirty keys from dirty and returns a Sorted
// iterator over them, seeded from the channel's dirty set.
func DrainSorted[K comparable](dirty *Set[K], graph *Graph[K], channel Channel) *Sorted[K] {
	seeds := make([]K, 0, dirty.Len(channel))
	for k := range dirty.Drain(channel) {
		seeds = append(seeds, k)
	}
	return NewSorted(seeds, graph, channel)
}

// DrainSortedDeterministic is the deterministic counterpart of DrainSorted.
func DrainSortedDeterministic[K comparable](dirty *Set[K], graph *Graph[K], channel Channel, less func(a, b K) bool) *SortedDeterministic[K] {
	seeds := make([]K, 0, dirty.Len(channel))
	for k := range dirty.Drain(channel) {
		seeds = append(seeds, k)
	}
	return NewSortedDeterministic(seeds, graph, channel, less)
}

// DrainAffectedSorted drains channel's dirty keys, expands the set by the
// transitive dependents of each root (supporting a "mark-only-roots"
// dirtying policy), and returns a Sorted iterator over the expanded set.
func DrainAffectedSorted[K comparable](dirty *Set[K], graph *Graph[K], channel Channel) *Sorted[K] {
	roots := make([]K, 0, dirty.Len(channel))
	for k := range dirty.Drain(channel) {
		roots = append(roots, k)
	}
	seeds := make([]K, 0, len(roots))
	seeds = append(seeds, roots...)
	scratch := NewTraversalScratch[K]()
	for _, root := range roots {
		graph.ForEachTransitiveDependent(root, channel, scratch, func(k K) {
			seeds = append(seeds, k)
		})
	}
	return NewSorted(seeds, graph, channel)
}

// DrainAffectedSortedDeterministic is the deterministic counterpart of
// DrainAffectedSorted.
func DrainAffectedSortedDeterministic[K comparable](dirty *Set[K], graph *Graph[K], channel Channel, less func(a, b K) bool) *SortedDeterministic[K] {
	roots := make([]K, 0, dirty.Len(channel))
	for k := range dirty.Drain(channel) {
		roots = append(roots, k)
	}
	seeds := make([]K, 0, len(roots))
	seeds = append(seeds, roots...)
	scratch := NewTraversalScratch[K]()
	for _, root := range roots {
		graph.ForEachTransitiveDependent(root, channel, scratch, func(k K) {
			seeds = append(seeds, k)
		})
	}
	return NewSortedDeterministic(seeds, graph, channel, less)
}
