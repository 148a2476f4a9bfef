package ebitenimaging

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"understory/imaging"
)

// floodShaderSrc recolors every pixel to a uniform color, keeping the
// source's alpha as a mask — the silhouette step a DropShadowFilter
// needs before blurring. Modeled on the teacher's
// pixelPerfectInlineShaderSrc: a single Kage fragment function sampling
// one neighbor (imageSrc0At) and deriving output purely from its alpha.
const floodShaderSrc = `
package main

var Color vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	a := imageSrc0At(src).a
	return vec4(Color.r*a, Color.g*a, Color.b*a, Color.a*a)
}
`

var floodShader *ebiten.Shader

func ensureFloodShader() *ebiten.Shader {
	if floodShader == nil {
		s, err := ebiten.NewShader([]byte(floodShaderSrc))
		if err != nil {
			panic("ebitenimaging: flood shader failed to compile: " + err.Error())
		}
		floodShader = s
	}
	return floodShader
}

func flood(src *ebiten.Image, c imaging.Color, pool *texturePool) *ebiten.Image {
	b := src.Bounds()
	dst := pool.Acquire(b.Dx(), b.Dy())
	dst = dst.SubImage(b).(*ebiten.Image)
	var op ebiten.DrawRectShaderOptions
	op.Images[0] = src
	op.Uniforms = map[string]any{
		"Color": []float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)},
	}
	dst.DrawRectShader(b.Dx(), b.Dy(), ensureFloodShader(), &op)
	return dst
}

// kawaseBlur ports the teacher's BlurFilter.Apply (iterative
// downscale/upscale relying on bilinear filtering, no shader) to operate
// against a shared texturePool instead of a filter-owned temp-image
// cache, since understory applies a fresh FilterDesc per LayerOp rather
// than reusing one long-lived *BlurFilter across frames.
func kawaseBlur(src *ebiten.Image, sigmaX, sigmaY float64, pool *texturePool) *ebiten.Image {
	radius := int(math.Round(math.Max(sigmaX, sigmaY)))
	b := src.Bounds()
	if radius <= 0 {
		dst := pool.Acquire(b.Dx(), b.Dy())
		dst = dst.SubImage(b).(*ebiten.Image)
		var op ebiten.DrawImageOptions
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &op)
		return dst
	}

	passes := int(math.Ceil(math.Log2(float64(radius))))
	if passes < 1 {
		passes = 1
	}

	temps := make([]*ebiten.Image, passes)
	w, h := b.Dx(), b.Dy()
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		temps[i] = pool.Acquire(w, h)
		temps[i] = temps[i].SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
		var op ebiten.DrawImageOptions
		sw := float64(current.Bounds().Dx())
		sh := float64(current.Bounds().Dy())
		op.GeoM.Scale(float64(w)/sw, float64(h)/sh)
		op.Filter = ebiten.FilterLinear
		temps[i].DrawImage(current, &op)
		current = temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		temps[i].Clear()
		var op ebiten.DrawImageOptions
		sw := float64(current.Bounds().Dx())
		sh := float64(current.Bounds().Dy())
		tb := temps[i].Bounds()
		op.GeoM.Scale(float64(tb.Dx())/sw, float64(tb.Dy())/sh)
		op.Filter = ebiten.FilterLinear
		temps[i].DrawImage(current, &op)
		current = temps[i]
		pool.Release(temps[i+1])
	}

	dst := pool.Acquire(b.Dx(), b.Dy())
	dst = dst.SubImage(b).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	sw := float64(current.Bounds().Dx())
	sh := float64(current.Bounds().Dy())
	op.GeoM.Scale(float64(b.Dx())/sw, float64(b.Dy())/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(current, &op)
	if passes >= 1 {
		pool.Release(temps[0])
	}
	return dst
}

// applyFilter lowers one imaging.FilterDesc to an ebiten.Image, grounded
// on filter.go's ColorMatrixFilter/BlurFilter/OutlineFilter techniques:
// FloodFilter recolors the source silhouette, BlurFilter runs the
// Kawase passes above, DropShadowFilter composes offset+blur+flood
// behind the original (the same "draw tinted copies, then redraw the
// original on top" shape as the teacher's OutlineFilter), and
// OffsetFilter is a plain translated redraw.
func applyFilter(f imaging.FilterDesc, src *ebiten.Image, pool *texturePool) *ebiten.Image {
	switch v := f.(type) {
	case imaging.FloodFilter:
		return flood(src, v.Color, pool)

	case imaging.BlurFilter:
		return kawaseBlur(src, v.SigmaX, v.SigmaY, pool)

	case imaging.OffsetFilter:
		b := src.Bounds()
		dst := pool.Acquire(b.Dx(), b.Dy())
		dst = dst.SubImage(b).(*ebiten.Image)
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(v.OffsetX, v.OffsetY)
		dst.DrawImage(src, &op)
		return dst

	case imaging.DropShadowFilter:
		silhouette := flood(src, v.Color, pool)
		blurred := kawaseBlur(silhouette, v.SigmaX, v.SigmaY, pool)
		pool.Release(silhouette)

		b := src.Bounds()
		dst := pool.Acquire(b.Dx(), b.Dy())
		dst = dst.SubImage(b).(*ebiten.Image)
		var shadowOp ebiten.DrawImageOptions
		shadowOp.GeoM.Translate(v.OffsetX, v.OffsetY)
		dst.DrawImage(blurred, &shadowOp)
		pool.Release(blurred)

		var srcOp ebiten.DrawImageOptions
		dst.DrawImage(src, &srcOp)
		return dst

	default:
		return src
	}
}
