package paa

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Encoder converts a source image into a PAA container with a full mipmap
// chain and the standard metadata taggs.
type Encoder struct {
	src      *image.NRGBA
	settings TextureSettings
}

// NewEncoder prepares an encoder for img with the given settings. The
// source image is copied so the encoder never mutates the caller's pixels.
func NewEncoder(img image.Image, settings TextureSettings) *Encoder {
	bounds := img.Bounds()
	src := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(src, src.Bounds(), img, bounds.Min, draw.Src)

	return &Encoder{src: src, settings: settings}
}

// Encode runs the pipeline: color stats, channel swizzle, autoreduce,
// mipmap series, per-level pixel encoding and compression.
func (e *Encoder) Encode() (*Image, error) {
	if e.src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	avg, maxc := colorStats(e.src)

	current := e.src
	if !e.settings.Swizzle.IsNoop() {
		swizzled := cloneNRGBA(current)
		e.settings.Swizzle.Apply(swizzled)
		current = swizzled
	}

	if solidColor(current) {
		// A uniform texture carries no detail; a single smallest level with
		// the pre-swizzle color stats is enough.
		floor := 1
		if e.settings.Format.IsDXTn() {
			floor = 4
		}
		current = downsampleTo(current, floor, floor)
	} else {
		if !e.settings.Swizzle.IsNoop() {
			avg, maxc = colorStats(current)
		}
		for n := e.settings.autoreduceSteps(); n > 0; n-- {
			w, h := nextLevelSize(current, e.settings.Format)
			if w == current.Bounds().Dx() && h == current.Bounds().Dy() {
				break
			}
			current = downsampleTo(current, w, h)
		}
	}

	out := &Image{Type: e.settings.Format}
	out.Taggs = append(out.Taggs,
		newColorTagg(TaggAvgc, avg),
		newColorTagg(TaggMaxc, maxc),
		newFlagTagg(transparencyOf(e.settings.Format, current)),
	)
	if !e.settings.Swizzle.IsNoop() {
		out.Taggs = append(out.Taggs, newSwizTagg(e.settings.Swizzle))
	}

	for {
		mip, err := encodeMipmap(current, e.settings.Format)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", len(out.Mipmaps), err)
		}
		out.Mipmaps = append(out.Mipmaps, mip)
		if len(out.Mipmaps) == maxMipmaps {
			break
		}

		w, h := nextLevelSize(current, e.settings.Format)
		if w == current.Bounds().Dx() && h == current.Bounds().Dy() {
			break
		}
		current = downsampleTo(current, w, h)
	}

	return out, nil
}

// nextLevelSize halves both dimensions, clamped at the format's floor:
// one DXT block edge for block formats, one pixel otherwise.
func nextLevelSize(img *image.NRGBA, t Type) (int, int) {
	floor := 1
	if t.IsDXTn() {
		floor = 4
	}

	w := img.Bounds().Dx() / 2
	h := img.Bounds().Dy() / 2
	if w < floor {
		w = floor
	}
	if h < floor {
		h = floor
	}

	return w, h
}

// downsampleTo scales img to the given size.
func downsampleTo(img *image.NRGBA, width, height int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)

	return out
}

func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	return out
}

// colorStats computes the average and per-channel maximum color.
func colorStats(img *image.NRGBA) (avg, maxc Color) {
	var sumR, sumG, sumB, sumA uint64
	var maxR, maxG, maxB, maxA uint8

	count := uint64(len(img.Pix) / 4)
	if count == 0 {
		return Color{}, Color{}
	}

	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
		sumR += uint64(r)
		sumG += uint64(g)
		sumB += uint64(b)
		sumA += uint64(a)
		maxR = max(maxR, r)
		maxG = max(maxG, g)
		maxB = max(maxB, b)
		maxA = max(maxA, a)
	}

	avg = Color{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
		A: uint8(sumA / count),
	}
	maxc = Color{R: maxR, G: maxG, B: maxB, A: maxA}

	return avg, maxc
}

// solidColor reports whether every pixel equals the first one.
func solidColor(img *image.NRGBA) bool {
	if len(img.Pix) < 4 {
		return true
	}

	first := [4]uint8{img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3]}
	for i := 4; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] != first[0] || img.Pix[i+1] != first[1] ||
			img.Pix[i+2] != first[2] || img.Pix[i+3] != first[3] {
			return false
		}
	}

	return true
}

// transparencyOf derives the FLAG tagg value from the target format and
// the actual alpha content.
func transparencyOf(t Type, img *image.NRGBA) Transparency {
	if !t.HasAlpha() {
		return TransparencyNone
	}

	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xFF {
			return TransparencyAlphaInterpolated
		}
	}

	return TransparencyNone
}
