package paa

import (
	"bytes"
	"errors"
	"image"
	"testing"
)

func absDelta(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestARGB1555KnownSample(t *testing.T) {
	// Purple, fully opaque.
	rgba := []byte{0x6B, 0x00, 0x94, 0xFF}
	packed := []byte{0x12, 0xB4}

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, rgba)

	data, err := encodePixels(TypeARGB1555, 1, 1, img)
	if err != nil {
		t.Fatalf("encodePixels: %v", err)
	}
	if !bytes.Equal(data, packed) {
		t.Errorf("encoded = % X, want % X", data, packed)
	}

	back, err := decodePixels(TypeARGB1555, 1, 1, packed)
	if err != nil {
		t.Fatalf("decodePixels: %v", err)
	}
	if !bytes.Equal(back.Pix, rgba) {
		t.Errorf("decoded = % X, want % X", back.Pix, rgba)
	}
}

func TestARGB4444RoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []byte{
		0x00, 0x11, 0x22, 0x33,
		0x44, 0x55, 0x66, 0x77,
		0x88, 0x99, 0xAA, 0xBB,
		0xCC, 0xDD, 0xEE, 0xFF,
	})

	data, err := encodePixels(TypeARGB4444, 2, 2, img)
	if err != nil {
		t.Fatalf("encodePixels: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("encoded %d bytes, want 8", len(data))
	}

	back, err := decodePixels(TypeARGB4444, 2, 2, data)
	if err != nil {
		t.Fatalf("decodePixels: %v", err)
	}
	for i := range img.Pix {
		if d := absDelta(back.Pix[i], img.Pix[i]); d > 8 {
			t.Errorf("pix[%d] = %d, want %d within 8", i, back.Pix[i], img.Pix[i])
		}
	}
}

func TestARGB1555RoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []byte{
		0x10, 0x80, 0xF0, 0xFF,
		0x25, 0x52, 0x07, 0x00,
	})

	data, err := encodePixels(TypeARGB1555, 2, 1, img)
	if err != nil {
		t.Fatalf("encodePixels: %v", err)
	}

	back, err := decodePixels(TypeARGB1555, 2, 1, data)
	if err != nil {
		t.Fatalf("decodePixels: %v", err)
	}
	for i := range img.Pix {
		if i%4 == 3 {
			// Alpha is one bit.
			if back.Pix[i] != img.Pix[i] {
				t.Errorf("alpha[%d] = %d, want %d", i, back.Pix[i], img.Pix[i])
			}
			continue
		}
		if d := absDelta(back.Pix[i], img.Pix[i]); d > 4 {
			t.Errorf("pix[%d] = %d, want %d within 4", i, back.Pix[i], img.Pix[i])
		}
	}
}

func TestARGB8888RoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}

	data, err := encodePixels(TypeARGB8888, 2, 2, img)
	if err != nil {
		t.Fatalf("encodePixels: %v", err)
	}
	if len(data) != 16 {
		t.Fatalf("encoded %d bytes, want 16", len(data))
	}

	back, err := decodePixels(TypeARGB8888, 2, 2, data)
	if err != nil {
		t.Fatalf("decodePixels: %v", err)
	}
	if !bytes.Equal(back.Pix, img.Pix) {
		t.Errorf("round trip = % X, want % X", back.Pix, img.Pix)
	}
}

func TestDecodePixelsBadLength(t *testing.T) {
	if _, err := decodePixels(TypeARGB8888, 2, 2, []byte{1, 2, 3}); !errors.Is(err, ErrPixelData) {
		t.Errorf("ARGB8888 err = %v", err)
	}
	if _, err := decodePixels(TypeARGB4444, 2, 2, []byte{1}); !errors.Is(err, ErrPixelData) {
		t.Errorf("ARGB4444 err = %v", err)
	}
	if _, err := decodePixels(TypeDXT1, 4, 4, []byte{1, 2}); !errors.Is(err, ErrPixelData) {
		t.Errorf("DXT1 err = %v", err)
	}
}

func TestPixelsUnsupportedFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	if _, err := decodePixels(TypeAI88, 1, 1, []byte{1, 2}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("decode AI88 err = %v", err)
	}
	if _, err := decodePixels(TypeIndexPalette, 1, 1, []byte{1}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("decode IndexPalette err = %v", err)
	}
	if _, err := encodePixels(TypeAI88, 1, 1, img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("encode AI88 err = %v", err)
	}
	if _, err := decodePixels(Type(0xBEEF), 1, 1, nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("decode unknown err = %v", err)
	}
}

func TestDXT5EncodeDecode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 0x40
		img.Pix[i+1] = 0x80
		img.Pix[i+2] = 0xC0
		img.Pix[i+3] = 0xFF
	}

	data, err := encodePixels(TypeDXT5, 4, 4, img)
	if err != nil {
		t.Fatalf("encodePixels: %v", err)
	}
	if len(data) != 16 {
		t.Fatalf("encoded %d bytes, want one 16-byte block", len(data))
	}

	back, err := decodePixels(TypeDXT5, 4, 4, data)
	if err != nil {
		t.Fatalf("decodePixels: %v", err)
	}
	for i := 0; i < len(back.Pix); i += 4 {
		if absDelta(back.Pix[i], 0x40) > 16 || absDelta(back.Pix[i+1], 0x80) > 16 ||
			absDelta(back.Pix[i+2], 0xC0) > 16 || back.Pix[i+3] != 0xFF {
			t.Fatalf("pixel %d = % X", i/4, back.Pix[i:i+4])
		}
	}
}
