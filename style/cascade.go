package style

import "understory/property"

// StyleOrigin ranks where a style in a cascade came from. Origins form a
// total priority order; within equal origin, higher specificity wins;
// within equal specificity, later-pushed wins.
type StyleOrigin int

const (
	OriginUserAgent StyleOrigin = iota
	OriginTheme
	OriginUser
	OriginOverride
)

type cascadeEntry struct {
	origin StyleOrigin
	style  Style
	index  int
}

// StyleCascade is an ordered list of (origin, style) pairs. Lookup for a
// property walks candidates in decreasing priority: origin descending,
// then specificity descending, then insertion index descending.
type StyleCascade struct {
	entries []cascadeEntry
}

// StyleCascadeBuilder appends (origin, style) pairs before Build seals an
// immutable StyleCascade out of them, sorted once for repeated lookups.
type StyleCascadeBuilder struct {
	entries []cascadeEntry
}

// NewStyleCascadeBuilder starts an empty cascade builder.
func NewStyleCascadeBuilder() *StyleCascadeBuilder {
	return &StyleCascadeBuilder{}
}

// Push appends a style under origin, recording its insertion index for
// tie-breaking.
func (b *StyleCascadeBuilder) Push(origin StyleOrigin, s Style) *StyleCascadeBuilder {
	b.entries = append(b.entries, cascadeEntry{origin: origin, style: s, index: len(b.entries)})
	return b
}

// Build seals the cascade, pre-sorted into decreasing lookup priority:
// origin desc, specificity desc, insertion index desc.
func (b *StyleCascadeBuilder) Build() StyleCascade {
	entries := append([]cascadeEntry(nil), b.entries...)
	sortByPriorityDesc(entries)
	return StyleCascade{entries: entries}
}

func sortByPriorityDesc(entries []cascadeEntry) {
	// Insertion sort: cascades are small (a handful of styles per object
	// class), and this keeps the comparator simple to read against the
	// three-way tie-break rule instead of reaching for sort.Slice's
	// index-based less func.
	for i := 1; i < len(entries); i++ {
		j := i
		for j > 0 && higherPriority(entries[j], entries[j-1]) {
			entries[j], entries[j-1] = entries[j-1], entries[j]
			j--
		}
	}
}

// higherPriority reports whether a should be looked at before b.
func higherPriority(a, b cascadeEntry) bool {
	if a.origin != b.origin {
		return a.origin > b.origin
	}
	as, bs := a.style.Specificity(), b.style.Specificity()
	if as != bs {
		return bs.Less(as)
	}
	return a.index > b.index
}

// Lookup returns the first (highest-priority) style in the cascade whose
// selector matches inputs and which carries an explicit value for
// property, and that value.
func Lookup[T any](c StyleCascade, inputs SelectorInputs, p property.Property[T]) (T, bool) {
	for _, e := range c.entries {
		if !e.style.MatchesSelector(inputs) {
			continue
		}
		if v, ok := Get(e.style, p); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// LookupRef is Lookup, borrowed.
func LookupRef[T any](c StyleCascade, inputs SelectorInputs, p property.Property[T]) (*T, bool) {
	for _, e := range c.entries {
		if !e.style.MatchesSelector(inputs) {
			continue
		}
		if v, ok := GetRef(e.style, p); ok {
			return v, true
		}
	}
	return nil, false
}
