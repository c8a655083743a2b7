package paa

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"

	"github.com/woozymasta/bcn"
)

// decodePixels converts raw (decompressed) pixel data of type t into NRGBA.
func decodePixels(t Type, width, height uint16, data []byte) (*image.NRGBA, error) {
	switch t {
	case TypeDXT1, TypeDXT2, TypeDXT3, TypeDXT4, TypeDXT5:
		return decodeBlocks(t, width, height, data)
	case TypeARGB4444:
		return decodePacked16(width, height, data, unpack4444)
	case TypeARGB1555:
		return decodePacked16(width, height, data, unpack1555)
	case TypeARGB8888:
		return decodeARGB8888(width, height, data)
	case TypeIndexPalette, TypeAI88:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, t)
	default:
		return nil, fmt.Errorf("%w: 0x%04X", ErrUnknownFormat, uint16(t))
	}
}

// encodePixels converts an NRGBA image into raw pixel data of type t.
func encodePixels(t Type, width, height uint16, img *image.NRGBA) ([]byte, error) {
	switch t {
	case TypeDXT1, TypeDXT2, TypeDXT3, TypeDXT4, TypeDXT5:
		return encodeBlocks(t, img)
	case TypeARGB4444:
		return encodePacked16(width, height, img, pack4444)
	case TypeARGB1555:
		return encodePacked16(width, height, img, pack1555)
	case TypeARGB8888:
		return encodeARGB8888(width, height, img)
	case TypeIndexPalette, TypeAI88:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, t)
	default:
		return nil, fmt.Errorf("%w: 0x%04X", ErrUnknownFormat, uint16(t))
	}
}

// blockDataLength is the expected byte count of DXTn block data.
func blockDataLength(t Type, width, height uint16) int {
	blocksW := (int(width) + 3) / 4
	blocksH := (int(height) + 3) / 4
	if t == TypeDXT1 {
		return blocksW * blocksH * 8
	}

	return blocksW * blocksH * 16
}

func decodeBlocks(t Type, width, height uint16, data []byte) (*image.NRGBA, error) {
	format, ok := t.blockFormat()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, t)
	}
	if len(data) != blockDataLength(t, width, height) {
		return nil, fmt.Errorf("%w: %s %dx%d: expected %d, got %d",
			ErrPixelData, t, width, height, blockDataLength(t, width, height), len(data))
	}

	decoded, err := bcn.DecodeImageWithOptions(data, int(width), int(height), format, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return toNRGBA(decoded), nil
}

func encodeBlocks(t Type, img *image.NRGBA) ([]byte, error) {
	format, ok := t.blockFormat()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, t)
	}

	data, _, _, err := bcn.EncodeImageWithOptions(img, format, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}

	return data, nil
}

// unpack4444 expands an ARGB 4:4:4:4 sample to 8-bit RGBA.
func unpack4444(v uint16) (r, g, b, a uint8) {
	return expand4(uint8(v >> 8 & 0xF)), expand4(uint8(v >> 4 & 0xF)),
		expand4(uint8(v & 0xF)), expand4(uint8(v >> 12))
}

// pack4444 quantizes 8-bit RGBA to an ARGB 4:4:4:4 sample.
func pack4444(r, g, b, a uint8) uint16 {
	return uint16(quant4(a))<<12 | uint16(quant4(r))<<8 | uint16(quant4(g))<<4 | uint16(quant4(b))
}

// unpack1555 expands an ARGB 1:5:5:5 sample to 8-bit RGBA.
func unpack1555(v uint16) (r, g, b, a uint8) {
	a = 0
	if v>>15 != 0 {
		a = 0xFF
	}

	return expand5(uint8(v >> 10 & 0x1F)), expand5(uint8(v >> 5 & 0x1F)),
		expand5(uint8(v & 0x1F)), a
}

// pack1555 quantizes 8-bit RGBA to an ARGB 1:5:5:5 sample.
func pack1555(r, g, b, a uint8) uint16 {
	v := uint16(quant5(r))<<10 | uint16(quant5(g))<<5 | uint16(quant5(b))
	if a >= 0x80 {
		v |= 1 << 15
	}

	return v
}

// expand4 scales a 4-bit value to 8 bits with rounding.
func expand4(v uint8) uint8 {
	return uint8((uint32(v)*255 + 7) / 15)
}

// expand5 scales a 5-bit value to 8 bits with rounding.
func expand5(v uint8) uint8 {
	return uint8((uint32(v)*255 + 15) / 31)
}

// quant4 scales an 8-bit value to 4 bits with rounding.
func quant4(v uint8) uint8 {
	return uint8((uint32(v)*15 + 127) / 255)
}

// quant5 scales an 8-bit value to 5 bits with rounding.
func quant5(v uint8) uint8 {
	return uint8((uint32(v)*31 + 127) / 255)
}

func decodePacked16(width, height uint16, data []byte, unpack func(uint16) (r, g, b, a uint8)) (*image.NRGBA, error) {
	pixels := int(width) * int(height)
	if len(data) != pixels*2 {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrPixelData, pixels*2, len(data))
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	for i := 0; i < pixels; i++ {
		v := binary.LittleEndian.Uint16(data[i*2:])
		r, g, b, a := unpack(v)
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}

	return img, nil
}

func encodePacked16(width, height uint16, img *image.NRGBA, pack func(r, g, b, a uint8) uint16) ([]byte, error) {
	src := normalized(img, width, height)
	pixels := int(width) * int(height)

	data := make([]byte, pixels*2)
	for i := 0; i < pixels; i++ {
		v := pack(src.Pix[i*4+0], src.Pix[i*4+1], src.Pix[i*4+2], src.Pix[i*4+3])
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}

	return data, nil
}

// decodeARGB8888 decodes 32-bit samples; each 4-byte group is the RGBA
// sample in reverse byte order.
func decodeARGB8888(width, height uint16, data []byte) (*image.NRGBA, error) {
	pixels := int(width) * int(height)
	if len(data) != pixels*4 {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrPixelData, pixels*4, len(data))
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	for i := 0; i < pixels; i++ {
		img.Pix[i*4+0] = data[i*4+3]
		img.Pix[i*4+1] = data[i*4+2]
		img.Pix[i*4+2] = data[i*4+1]
		img.Pix[i*4+3] = data[i*4+0]
	}

	return img, nil
}

func encodeARGB8888(width, height uint16, img *image.NRGBA) ([]byte, error) {
	src := normalized(img, width, height)
	pixels := int(width) * int(height)

	data := make([]byte, pixels*4)
	for i := 0; i < pixels; i++ {
		data[i*4+0] = src.Pix[i*4+3]
		data[i*4+1] = src.Pix[i*4+2]
		data[i*4+2] = src.Pix[i*4+1]
		data[i*4+3] = src.Pix[i*4+0]
	}

	return data, nil
}

// normalized returns img as a tightly packed NRGBA at origin.
func normalized(img *image.NRGBA, width, height uint16) *image.NRGBA {
	bounds := img.Bounds()
	if bounds.Min == (image.Point{}) && img.Stride == int(width)*4 &&
		bounds.Dx() == int(width) && bounds.Dy() == int(height) {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

// toNRGBA converts a decoded image to NRGBA without copying when possible.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
