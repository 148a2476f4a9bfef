// Package dirty provides channel-partitioned dirty tracking: a set of dirty
// keys per recompute channel, a bidirectional dependency graph between keys,
// and topologically ordered drain iterators over that graph.
package dirty

import "fmt"

// Channel names an independent recompute domain, such as layout or paint.
// Channel values must be in [0, MaxChannels).
type Channel uint8

// MaxChannels is the number of distinct channels a ChannelSet can represent.
const MaxChannels = 64

// NewChannel returns the Channel for the given index. Panics if idx >= MaxChannels.
func NewChannel(idx uint8) Channel {
	if idx >= MaxChannels {
		panic(fmt.Sprintf("dirty: channel index %d out of range [0,%d)", idx, MaxChannels))
	}
	return Channel(idx)
}

// IntoSet returns a ChannelSet containing only this channel.
func (c Channel) IntoSet() ChannelSet {
	return ChannelSet(1) << ChannelSet(c)
}

// ChannelSet is a bitset over channels with O(1) union, intersection, and
// membership tests.
type ChannelSet uint64

// EmptyChannelSet is the empty set.
const EmptyChannelSet ChannelSet = 0

// Contains reports whether c is a member of the set.
func (s ChannelSet) Contains(c Channel) bool {
	return s&c.IntoSet() != 0
}

// Insert returns the set with c added.
func (s ChannelSet) Insert(c Channel) ChannelSet {
	return s | c.IntoSet()
}

// Remove returns the set with c removed.
func (s ChannelSet) Remove(c Channel) ChannelSet {
	return s &^ c.IntoSet()
}

// Union returns the union of s and other.
func (s ChannelSet) Union(other ChannelSet) ChannelSet {
	return s | other
}

// Intersect returns the intersection of s and other.
func (s ChannelSet) Intersect(other ChannelSet) ChannelSet {
	return s & other
}

// IsEmpty reports whether the set has no members.
func (s ChannelSet) IsEmpty() bool {
	return s == 0
}

// Len returns the number of channels in the set.
func (s ChannelSet) Len() int {
	n := 0
	for s != 0 {
		s &= s - 1
		n++
	}
	return n
}

// Channels returns the members of the set in ascending order.
func (s ChannelSet) Channels() []Channel {
	out := make([]Channel, 0, s.Len())
	for i := Channel(0); i < MaxChannels; i++ {
		if s.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}
