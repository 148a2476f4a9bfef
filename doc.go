// Package understory is a reactive-core substrate for building UI
// frameworks: channel-partitioned dirty tracking over a dependency
// graph, a layered dependency-property store with a CSS-like style
// cascade and theming, and a backend-agnostic vector-imaging IR with
// recording and replay.
//
// Understory has no scene graph, no input handling, and no widget set
// of its own — those sit around the core in a host application. What
// it provides is the substrate those layers are built on:
//
//   - [understory/dirty]: channels, dependency graphs, and the
//     incremental forward/reverse drains that turn "this changed" into
//     "these need to be recomputed, in dependency order".
//   - [understory/property]: a sparse per-object property store with
//     Local and Animation layers, type-erased storage behind typed
//     accessors, and inheritance along a caller-supplied parent chain.
//   - [understory/style]: selectors, specificity, a style cascade
//     (user-agent/theme/user/override origins), and theme resources,
//     composed with property to resolve a value through the full
//     animation → local → cascade → theme → inherited → default chain.
//   - [understory/imaging]: a closed set of state/draw operations
//     (brushes, filters, clips, transforms) a backend applies
//     immediately and can optionally record into a replayable,
//     CTM-validity-checked [understory/imaging.RecordedOps].
//   - [understory/imaging/wire]: a binary codec for shipping a
//     recorded op sequence across a worker boundary within one
//     process.
//   - [understory/intern]: dense handle interning for non-comparable
//     keys.
//   - [understory/proptween]: drives a property.Store's Animation
//     layer from [gween] tweens.
//   - [understory/external]: the contracts Understory consumes from
//     collaborators it does not implement — a spatial index, a layout
//     engine, and a text shaper.
//   - [understory/backend/ebitenimaging]: a reference
//     imaging.ImagingBackend over [Ebitengine].
//
// See cmd/understorydemo for a small program exercising the full
// stack end to end.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package understory
