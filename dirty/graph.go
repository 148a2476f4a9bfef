package dirty

import "fmt"

// CycleHandling controls what happens when adding a dependency would create
// a cycle.
type CycleHandling uint8

const (
	// CycleDebugAssert panics in debug builds and silently drops the edge
	// otherwise. This is the default: cycle regressions are caught during
	// development without paying the reachability probe's cost in release
	// (Go has no separate debug/release build mode, so Understory treats
	// "debug" as whenever the DebugAssertions package variable is true;
	// see assert.go).
	CycleDebugAssert CycleHandling = iota
	// CycleError returns a *CycleErr[K] naming (from, to, channel).
	CycleError
	// CycleIgnore silently drops the edge and reports it as not added.
	CycleIgnore
	// CycleAllow skips cycle detection entirely and adds the edge
	// unconditionally.
	CycleAllow
)

// CycleErr is returned when adding a dependency would create a cycle and the
// handling policy is CycleError.
type CycleErr[K comparable] struct {
	From, To K
	Channel  Channel
}

func (e *CycleErr[K]) Error() string {
	return fmt.Sprintf("dirty: adding dependency %v -> %v in channel %d would create a cycle", e.From, e.To, e.Channel)
}

type edgeKey[K comparable] struct {
	key     K
	channel Channel
}

// Graph stores bidirectional "from depends on to" edges, partitioned by
// channel, with O(1) queries in both directions.
type Graph[K comparable] struct {
	forward         map[edgeKey[K]]map[K]struct{}
	reverse         map[edgeKey[K]]map[K]struct{}
	forwardChannels map[K]ChannelSet
	reverseChannels map[K]ChannelSet
}

// NewGraph returns an empty dependency graph.
func NewGraph[K comparable]() *Graph[K] {
	return &Graph[K]{
		forward:         make(map[edgeKey[K]]map[K]struct{}),
		reverse:         make(map[edgeKey[K]]map[K]struct{}),
		forwardChannels: make(map[K]ChannelSet),
		reverseChannels: make(map[K]ChannelSet),
	}
}

// IsEmpty reports whether the graph has no edges.
func (g *Graph[K]) IsEmpty() bool {
	return len(g.forward) == 0
}

// AddDependency records "from depends on to" in channel. Returns true if the
// edge was newly added, false if it already existed or was dropped under the
// handling policy. Self-edges are always cycles.
func (g *Graph[K]) AddDependency(from, to K, channel Channel, handling CycleHandling) (bool, error) {
	if from == to {
		return g.handleCycle(from, to, channel, handling)
	}
	if handling != CycleAllow && g.wouldCreateCycle(from, to, channel) {
		return g.handleCycle(from, to, channel, handling)
	}

	ek := edgeKey[K]{from, channel}
	set, ok := g.forward[ek]
	if !ok {
		set = make(map[K]struct{})
		g.forward[ek] = set
	}
	if _, exists := set[to]; exists {
		return false, nil
	}
	set[to] = struct{}{}

	rk := edgeKey[K]{to, channel}
	rset, ok := g.reverse[rk]
	if !ok {
		rset = make(map[K]struct{})
		g.reverse[rk] = rset
	}
	rset[from] = struct{}{}

	g.forwardChannels[from] = g.forwardChannels[from].Insert(channel)
	g.reverseChannels[to] = g.reverseChannels[to].Insert(channel)

	return true, nil
}

func (g *Graph[K]) handleCycle(from, to K, channel Channel, handling CycleHandling) (bool, error) {
	switch handling {
	case CycleDebugAssert:
		assertf("dirty: adding dependency %v -> %v in channel %d would create a cycle", from, to, channel)
		return false, nil
	case CycleError:
		return false, &CycleErr[K]{From: from, To: to, Channel: channel}
	default: // CycleIgnore, CycleAllow (self-edge case only reaches here for Allow)
		return false, nil
	}
}

// wouldCreateCycle performs a DFS from `to`, looking for `from` reachable via
// forward edges in `channel`.
func (g *Graph[K]) wouldCreateCycle(from, to K, channel Channel) bool {
	visited := make(map[K]struct{})
	stack := []K{to}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == from {
			return true
		}
		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		if deps, ok := g.forward[edgeKey[K]{current, channel}]; ok {
			for dep := range deps {
				stack = append(stack, dep)
			}
		}
	}
	return false
}

// RemoveDependency removes the from->to edge in channel. Returns true if the
// edge existed.
func (g *Graph[K]) RemoveDependency(from, to K, channel Channel) bool {
	fk := edgeKey[K]{from, channel}
	deps, ok := g.forward[fk]
	if !ok {
		return false
	}
	if _, exists := deps[to]; !exists {
		return false
	}
	delete(deps, to)
	removedForwardEntry := false
	if len(deps) == 0 {
		delete(g.forward, fk)
		removedForwardEntry = true
	}

	rk := edgeKey[K]{to, channel}
	removedReverseEntry := false
	if dependents, ok := g.reverse[rk]; ok {
		delete(dependents, from)
		if len(dependents) == 0 {
			delete(g.reverse, rk)
			removedReverseEntry = true
		}
	}

	if removedForwardEntry {
		if set, ok := g.forwardChannels[from]; ok {
			set = set.Remove(channel)
			if set.IsEmpty() {
				delete(g.forwardChannels, from)
			} else {
				g.forwardChannels[from] = set
			}
		}
	}
	if removedReverseEntry {
		if set, ok := g.reverseChannels[to]; ok {
			set = set.Remove(channel)
			if set.IsEmpty() {
				delete(g.reverseChannels, to)
			} else {
				g.reverseChannels[to] = set
			}
		}
	}

	return true
}

// ReplaceDependencies replaces all direct dependencies of from in channel
// with newDeps. It is an atomic transaction: if adding any new dependency
// fails under handling, the freshly added edges are removed and the old
// edge set is reinstated with cycle detection disabled (the pre-call state
// was, by construction, acyclic). Returns true if the dependency set
// changed.
func (g *Graph[K]) ReplaceDependencies(from K, channel Channel, newDeps []K, handling CycleHandling) (bool, error) {
	old := g.dependenciesSet(from, channel)

	newSet := make(map[K]struct{}, len(newDeps))
	for _, d := range newDeps {
		newSet[d] = struct{}{}
	}
	if setsEqual(old, newSet) {
		return false, nil
	}

	for dep := range old {
		g.RemoveDependency(from, dep, channel)
	}

	added := make([]K, 0, len(newSet))
	for dep := range newSet {
		ok, err := g.AddDependency(from, dep, channel, handling)
		if err != nil {
			for _, d := range added {
				g.RemoveDependency(from, d, channel)
			}
			for dep := range old {
				_, _ = g.AddDependency(from, dep, channel, CycleAllow)
			}
			return false, err
		}
		if ok {
			added = append(added, dep)
		}
	}

	return true, nil
}

func (g *Graph[K]) dependenciesSet(key K, channel Channel) map[K]struct{} {
	deps, ok := g.forward[edgeKey[K]{key, channel}]
	if !ok {
		return nil
	}
	out := make(map[K]struct{}, len(deps))
	for d := range deps {
		out[d] = struct{}{}
	}
	return out
}

func setsEqual[K comparable](a, b map[K]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// RemoveKey removes key entirely from the graph: every edge where key is
// either the dependent or the dependency is removed, in every channel, and
// the channel caches are pruned.
func (g *Graph[K]) RemoveKey(key K) {
	if channels, ok := g.forwardChannels[key]; ok {
		delete(g.forwardChannels, key)
		for _, channel := range channels.Channels() {
			fk := edgeKey[K]{key, channel}
			deps, ok := g.forward[fk]
			if !ok {
				continue
			}
			delete(g.forward, fk)
			for dep := range deps {
				rk := edgeKey[K]{dep, channel}
				dependents, ok := g.reverse[rk]
				if !ok {
					continue
				}
				delete(dependents, key)
				if len(dependents) == 0 {
					delete(g.reverse, rk)
					if set, ok := g.reverseChannels[dep]; ok {
						set = set.Remove(channel)
						if set.IsEmpty() {
							delete(g.reverseChannels, dep)
						} else {
							g.reverseChannels[dep] = set
						}
					}
				}
			}
		}
	}

	if channels, ok := g.reverseChannels[key]; ok {
		delete(g.reverseChannels, key)
		for _, channel := range channels.Channels() {
			rk := edgeKey[K]{key, channel}
			dependents, ok := g.reverse[rk]
			if !ok {
				continue
			}
			delete(g.reverse, rk)
			for dependent := range dependents {
				fk := edgeKey[K]{dependent, channel}
				deps, ok := g.forward[fk]
				if !ok {
					continue
				}
				delete(deps, key)
				if len(deps) == 0 {
					delete(g.forward, fk)
					if set, ok := g.forwardChannels[dependent]; ok {
						set = set.Remove(channel)
						if set.IsEmpty() {
							delete(g.forwardChannels, dependent)
						} else {
							g.forwardChannels[dependent] = set
						}
					}
				}
			}
		}
	}
}

// Dependencies returns the direct dependencies of key in channel: the keys
// that key depends on. Iteration order is unspecified.
func (g *Graph[K]) Dependencies(key K, channel Channel) []K {
	deps, ok := g.forward[edgeKey[K]{key, channel}]
	if !ok {
		return nil
	}
	out := make([]K, 0, len(deps))
	for d := range deps {
		out = append(out, d)
	}
	return out
}

// Dependents returns the direct dependents of key in channel: the keys that
// depend on key. Iteration order is unspecified.
func (g *Graph[K]) Dependents(key K, channel Channel) []K {
	deps, ok := g.reverse[edgeKey[K]{key, channel}]
	if !ok {
		return nil
	}
	out := make([]K, 0, len(deps))
	for d := range deps {
		out = append(out, d)
	}
	return out
}

// TransitiveDependents returns every key that directly or indirectly depends
// on key, via DFS over the reverse graph. Iteration order is unspecified.
func (g *Graph[K]) TransitiveDependents(key K, channel Channel) []K {
	scratch := NewTraversalScratch[K]()
	var out []K
	g.ForEachTransitiveDependent(key, channel, scratch, func(k K) {
		out = append(out, k)
	})
	return out
}

// ForEachTransitiveDependent calls f for each transitive dependent of key,
// using scratch for its visited-set and stack storage so callers can reuse
// allocations across traversals.
func (g *Graph[K]) ForEachTransitiveDependent(key K, channel Channel, scratch *TraversalScratch[K], f func(K)) {
	scratch.Reset()
	scratch.stack = append(scratch.stack, g.Dependents(key, channel)...)

	for len(scratch.stack) > 0 {
		next := scratch.stack[len(scratch.stack)-1]
		scratch.stack = scratch.stack[:len(scratch.stack)-1]
		if _, seen := scratch.visited[next]; seen {
			continue
		}
		scratch.visited[next] = struct{}{}
		f(next)
		scratch.stack = append(scratch.stack, g.Dependents(next, channel)...)
	}
}

// DependencyChannels returns the set of channels in which key has any
// dependencies.
func (g *Graph[K]) DependencyChannels(key K) ChannelSet {
	return g.forwardChannels[key]
}

// DependentChannels returns the set of channels in which key has any
// dependents.
func (g *Graph[K]) DependentChannels(key K) ChannelSet {
	return g.reverseChannels[key]
}

// HasDependencies reports whether key has any dependencies in channel.
func (g *Graph[K]) HasDependencies(key K, channel Channel) bool {
	deps, ok := g.forward[edgeKey[K]{key, channel}]
	return ok && len(deps) > 0
}

// HasDependents reports whether key has any dependents in channel.
func (g *Graph[K]) HasDependents(key K, channel Channel) bool {
	deps, ok := g.reverse[edgeKey[K]{key, channel}]
	return ok && len(deps) > 0
}

// InDegree returns the number of keys that key depends on in channel.
func (g *Graph[K]) InDegree(key K, channel Channel) int {
	return len(g.forward[edgeKey[K]{key, channel}])
}

// OutDegree returns the number of keys that depend on key in channel.
func (g *Graph[K]) OutDegree(key K, channel Channel) int {
	return len(g.reverse[edgeKey[K]{key, channel}])
}

// Keys returns every unique key that has dependencies or dependents in any
// channel. Iteration order is unspecified.
func (g *Graph[K]) Keys() []K {
	seen := make(map[K]struct{}, len(g.forwardChannels)+len(g.reverseChannels))
	out := make([]K, 0, len(g.forwardChannels)+len(g.reverseChannels))
	for k := range g.forwardChannels {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	for k := range g.reverseChannels {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
