package ebitenimaging

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// texturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions, the same scheme the teacher's
// renderTexturePool used for static-cache and filter scratch buffers:
// after warmup, Acquire/Release are zero-alloc.
type texturePool struct {
	buckets map[uint64][]*ebiten.Image
}

func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
func (p *texturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. Callers frequently hand
// back a SubImage view cropped to the logical (non-padded) size rather than
// the *ebiten.Image Acquire actually allocated, so the bucket key is
// re-derived through nextPowerOfTwo rather than trusting img.Bounds()
// directly: that recovers the true allocation size whether img is the raw
// acquired image or a crop of it, since nextPowerOfTwo is idempotent on
// already-padded sizes.
func (p *texturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(nextPowerOfTwo(b.Dx()), nextPowerOfTwo(b.Dy()))

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}
