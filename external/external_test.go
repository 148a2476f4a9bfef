package external

import (
	"testing"

	"understory/imaging"
)

type gridIndex struct {
	entries map[SpatialKey]SpatialRect
}

func newGridIndex() *gridIndex { return &gridIndex{entries: map[SpatialKey]SpatialRect{}} }

func (g *gridIndex) Insert(key SpatialKey, rect SpatialRect) { g.entries[key] = rect }
func (g *gridIndex) Update(key SpatialKey, rect SpatialRect) { g.entries[key] = rect }
func (g *gridIndex) Remove(key SpatialKey)                  { delete(g.entries, key) }
func (g *gridIndex) Query(region SpatialRect) []SpatialKey {
	var hits []SpatialKey
	for k, r := range g.entries {
		if r.X0 < region.X1 && r.X1 > region.X0 && r.Y0 < region.Y1 && r.Y1 > region.Y0 {
			hits = append(hits, k)
		}
	}
	return hits
}

func TestSpatialIndexContractIsImplementable(t *testing.T) {
	var idx SpatialIndex = newGridIndex()
	idx.Insert(1, SpatialRect{X0: 0, Y0: 0, X1: 10, Y1: 10})
	idx.Insert(2, SpatialRect{X0: 100, Y0: 100, X1: 110, Y1: 110})

	hits := idx.Query(SpatialRect{X0: 0, Y0: 0, X1: 5, Y1: 5})
	if len(hits) != 1 || hits[0] != 1 {
		t.Fatalf("expected exactly key 1 to hit, got %v", hits)
	}

	idx.Remove(1)
	if hits := idx.Query(SpatialRect{X0: 0, Y0: 0, X1: 5, Y1: 5}); len(hits) != 0 {
		t.Fatalf("expected no hits after removal, got %v", hits)
	}
}

type identityShaper struct{}

func (identityShaper) Shape(text string, font FontHandle, sizePx float64) GlyphRun {
	glyphs := make([]PositionedGlyph, len(text))
	for i := range text {
		glyphs[i] = PositionedGlyph{
			Transform: imaging.Translate(float64(i)*sizePx, 0),
			Path:      imaging.PathId(i),
			HasPath:   true,
		}
	}
	return GlyphRun{Glyphs: glyphs}
}

func TestTextShaperContractIsImplementable(t *testing.T) {
	var shaper TextShaper = identityShaper{}
	run := shaper.Shape("hi", FontHandle(1), 12)
	if len(run.Glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(run.Glyphs))
	}
}
