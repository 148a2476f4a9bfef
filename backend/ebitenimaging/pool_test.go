package ebitenimaging

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNextPowerOfTwoRoundsUp(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 256: 256, 257: 512}
	for in, want := range cases {
		if got := nextPowerOfTwo(in); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPoolKeyDistinctForDifferentDimensions(t *testing.T) {
	if poolKey(64, 64) == poolKey(64, 128) {
		t.Fatal("expected different keys for different heights")
	}
	if poolKey(64, 64) != poolKey(64, 64) {
		t.Fatal("expected identical keys for identical dimensions")
	}
}

func TestPoolAcquireReleaseReusesImage(t *testing.T) {
	var p texturePool
	img := p.Acquire(100, 50)
	p.Release(img)
	again := p.Acquire(100, 50)
	if again != img {
		t.Fatal("expected Acquire after Release to return the pooled image")
	}
}

func TestPoolReleaseOfCroppedSubImageStillReuses(t *testing.T) {
	var p texturePool
	img := p.Acquire(100, 50)
	// Simulate the logical (non-padded) crop a caller takes before reuse:
	// a SubImage view reporting the requested size rather than the
	// power-of-two-padded allocation actually backing it.
	logical := img.SubImage(image.Rect(0, 0, 100, 50)).(*ebiten.Image)
	p.Release(logical)
	again := p.Acquire(100, 50)
	if again != img {
		t.Fatal("expected Release of a cropped SubImage view to land back in the same bucket Acquire used")
	}
}
