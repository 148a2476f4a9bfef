package ebitenimaging

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"understory/imaging"
)

// Resources is the ResourceBackend: four flat slot tables, one per
// resource domain, each keyed by a monotonically increasing handle.
// Unlike understory/intern (which deduplicates comparable values),
// resource handles here are never deduplicated by content — two calls
// to CreatePaint with an identical Brush yield two distinct PaintIds,
// matching the teacher's atlas/page handle tables where each Create
// call mints a fresh slot rather than interning by value.
type Resources struct {
	log *zap.SugaredLogger

	paths    map[imaging.PathId]imaging.PathData
	nextPath uint32

	images    map[imaging.ImageId]*ebiten.Image
	nextImage uint32

	paints    map[imaging.PaintId]imaging.Brush
	nextPaint uint32

	pictures    map[imaging.PictureId]imaging.RecordedOps
	nextPicture uint32
}

// NewResources builds an empty resource table, logging at Warn via log
// whenever a caller references a destroyed or never-created handle.
func NewResources(log *zap.SugaredLogger) *Resources {
	return &Resources{
		log:      log,
		paths:    make(map[imaging.PathId]imaging.PathData),
		images:   make(map[imaging.ImageId]*ebiten.Image),
		paints:   make(map[imaging.PaintId]imaging.Brush),
		pictures: make(map[imaging.PictureId]imaging.RecordedOps),
	}
}

func (r *Resources) CreatePath(subpath imaging.PathData) imaging.PathId {
	r.nextPath++
	id := imaging.PathId(r.nextPath)
	r.paths[id] = subpath
	return id
}

func (r *Resources) DestroyPath(id imaging.PathId) { delete(r.paths, id) }

func (r *Resources) path(id imaging.PathId) (imaging.PathData, bool) {
	v, ok := r.paths[id]
	if !ok {
		r.log.Warnw("draw referenced unknown or destroyed path", "path", id)
	}
	return v, ok
}

func (r *Resources) CreateImage(pixels imaging.ImagePixels) imaging.ImageId {
	img, ok := pixels.(*ebiten.Image)
	if !ok {
		r.log.Warnw("CreateImage given non-*ebiten.Image payload; slot left empty", "type", pixels)
	}
	r.nextImage++
	id := imaging.ImageId(r.nextImage)
	r.images[id] = img
	return id
}

func (r *Resources) DestroyImage(id imaging.ImageId) { delete(r.images, id) }

func (r *Resources) image(id imaging.ImageId) (*ebiten.Image, bool) {
	v, ok := r.images[id]
	if !ok || v == nil {
		r.log.Warnw("draw referenced unknown or destroyed image", "image", id)
		return nil, false
	}
	return v, true
}

func (r *Resources) CreatePaint(brush imaging.Brush) imaging.PaintId {
	r.nextPaint++
	id := imaging.PaintId(r.nextPaint)
	r.paints[id] = brush
	return id
}

func (r *Resources) DestroyPaint(id imaging.PaintId) { delete(r.paints, id) }

func (r *Resources) paint(id imaging.PaintId) (imaging.Brush, bool) {
	v, ok := r.paints[id]
	if !ok {
		r.log.Warnw("draw referenced unknown or destroyed paint", "paint", id)
	}
	return v, ok
}

func (r *Resources) CreatePicture(rec imaging.RecordedOps) imaging.PictureId {
	r.nextPicture++
	id := imaging.PictureId(r.nextPicture)
	r.pictures[id] = rec
	return id
}

func (r *Resources) DestroyPicture(id imaging.PictureId) { delete(r.pictures, id) }

func (r *Resources) picture(id imaging.PictureId) (imaging.RecordedOps, bool) {
	v, ok := r.pictures[id]
	if !ok {
		r.log.Warnw("draw referenced unknown or destroyed picture", "picture", id)
	}
	return v, ok
}
