package paa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math/bits"
)

// Mipmap wire layout constants.
const (
	// mipWidthLZO on a DXTn level width marks the payload as LZO-packed.
	mipWidthLZO = 0x8000

	// Legacy index-palette LZSS levels carry this fake dimension pair in
	// front of the real one.
	legacyMarkerWidth  = 1234
	legacyMarkerHeight = 8765
)

// Mipmap is one level of a PAA image. Data holds the payload exactly as
// stored on disk; Decode inflates and converts it on demand, so a damaged
// level does not prevent reading its siblings.
type Mipmap struct {
	Width  uint16
	Height uint16
	// Type is the pixel format, inherited from the container.
	Type Type
	// Compression is the byte-compression layer of Data.
	Compression Compression
	// Data is the stored (possibly compressed) payload.
	Data []byte
}

func (m *Mipmap) String() string {
	return fmt.Sprintf("%dx%d %s (%s, %d bytes)", m.Width, m.Height, m.Type, m.Compression, len(m.Data))
}

// readU24 reads a 3-byte little-endian unsigned integer.
func readU24(r io.Reader) (int, error) {
	var b [3]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}

	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16, nil
}

// writeU24 writes a 3-byte little-endian unsigned integer.
func writeU24(buf *bytes.Buffer, n int) {
	buf.WriteByte(byte(n))
	buf.WriteByte(byte(n >> 8))
	buf.WriteByte(byte(n >> 16))
}

// readMipmap reads one level of type t from r. A zero dimension pair is the
// chain terminator and returns (nil, nil).
func readMipmap(r *bytes.Reader, t Type) (*Mipmap, error) {
	var width, height uint16
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading mipmap width: %v", ErrTruncated, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading mipmap height: %v", ErrTruncated, err)
	}

	if width == 0 || height == 0 {
		return nil, nil
	}

	compression := CompressionNone
	legacy := width == legacyMarkerWidth && height == legacyMarkerHeight
	if legacy {
		// The real dimensions follow the marker pair.
		if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
			return nil, fmt.Errorf("%w: reading mipmap width: %v", ErrTruncated, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
			return nil, fmt.Errorf("%w: reading mipmap height: %v", ErrTruncated, err)
		}
		compression = CompressionLZSS
	} else if t.IsDXTn() {
		if width&mipWidthLZO != 0 {
			width &^= mipWidthLZO
			compression = CompressionLZO
		}
	}

	length, err := readU24(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading mipmap length: %v", ErrTruncated, err)
	}
	if length > r.Len() {
		return nil, fmt.Errorf("%w: mipmap payload of %d bytes beyond EOF", ErrTruncated, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: reading mipmap payload: %v", ErrTruncated, err)
	}

	// Packed formats signal compression only through the stored length not
	// matching the raw pixel size.
	if !legacy && !t.IsDXTn() {
		if predicted := t.PredictSize(width, height); predicted >= 0 && length != predicted {
			if t == TypeIndexPalette {
				compression = CompressionRLE
			} else {
				compression = CompressionLZSS
			}
		}
	}

	return &Mipmap{
		Width:       width,
		Height:      height,
		Type:        t,
		Compression: compression,
		Data:        data,
	}, nil
}

// writeMipmap serializes one level, restoring the on-disk compression flags.
func writeMipmap(buf *bytes.Buffer, m *Mipmap) error {
	if m.Width == 0 || m.Height == 0 {
		return ErrEmptyMipmap
	}
	if err := u24Check(len(m.Data)); err != nil {
		return fmt.Errorf("%w: mipmap payload of %d bytes", ErrMipmapTooLarge, len(m.Data))
	}

	width := m.Width
	switch {
	case m.Type.IsDXTn() && m.Compression == CompressionLZO:
		width |= mipWidthLZO
	case m.Type == TypeIndexPalette && m.Compression == CompressionLZSS:
		_ = binary.Write(buf, binary.LittleEndian, uint16(legacyMarkerWidth))
		_ = binary.Write(buf, binary.LittleEndian, uint16(legacyMarkerHeight))
	}

	_ = binary.Write(buf, binary.LittleEndian, width)
	_ = binary.Write(buf, binary.LittleEndian, m.Height)
	writeU24(buf, len(m.Data))
	buf.Write(m.Data)

	return nil
}

// serializedSize is the on-disk byte count of the level including its header.
func (m *Mipmap) serializedSize() int {
	size := 2 + 2 + 3 + len(m.Data)
	if m.Type == TypeIndexPalette && m.Compression == CompressionLZSS {
		size += 4
	}

	return size
}

// Raw returns the decompressed pixel data of the level, still in the
// container's pixel format.
func (m *Mipmap) Raw() ([]byte, error) {
	expected := m.Type.PredictSize(m.Width, m.Height)
	if expected < 0 {
		return nil, fmt.Errorf("%w: 0x%04X", ErrUnknownFormat, uint16(m.Type))
	}

	return m.Compression.decompress(m.Data, expected)
}

// Decode converts the level into an NRGBA image.
func (m *Mipmap) Decode() (*image.NRGBA, error) {
	switch m.Type {
	case TypeIndexPalette, TypeAI88:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, m.Type)
	}

	raw, err := m.Raw()
	if err != nil {
		return nil, err
	}

	return decodePixels(m.Type, m.Width, m.Height, raw)
}

// validPow2Block reports whether n is a power of two no smaller than a
// 4-pixel DXT block edge.
func validPow2Block(n uint16) bool {
	return n >= 4 && bits.OnesCount16(n) == 1
}

// encodeMipmap converts an NRGBA image into one stored level of type t,
// applying the standard compression policy for the format and size.
func encodeMipmap(img *image.NRGBA, t Type) (*Mipmap, error) {
	bounds := img.Bounds()
	width, err := u16FromInt(bounds.Dx())
	if err != nil {
		return nil, fmt.Errorf("%w: width %d", ErrMipmapTooLarge, bounds.Dx())
	}
	height, err := u16FromInt(bounds.Dy())
	if err != nil {
		return nil, fmt.Errorf("%w: height %d", ErrMipmapTooLarge, bounds.Dy())
	}
	if width == 0 || height == 0 {
		return nil, ErrEmptyMipmap
	}
	// The width high bit carries the LZO flag on disk.
	if width >= mipWidthLZO {
		return nil, fmt.Errorf("%w: width %d", ErrMipmapTooLarge, width)
	}
	if t.IsDXTn() && (!validPow2Block(width) || !validPow2Block(height)) {
		return nil, fmt.Errorf("%w: %dx%d", ErrMipmapDimensions, width, height)
	}

	raw, err := encodePixels(t, width, height, img)
	if err != nil {
		return nil, err
	}
	if predicted := t.PredictSize(width, height); predicted >= 0 && len(raw) != predicted {
		return nil, fmt.Errorf("%w: predicted %d, got %d", ErrMipmapDataSize, predicted, len(raw))
	}

	compression := suggestCompression(t, width, height)
	data, err := compression.compress(raw)
	if err != nil {
		return nil, err
	}
	if err := u24Check(len(data)); err != nil {
		return nil, fmt.Errorf("%w: mipmap payload of %d bytes", ErrMipmapTooLarge, len(data))
	}

	return &Mipmap{
		Width:       width,
		Height:      height,
		Type:        t,
		Compression: compression,
		Data:        data,
	}, nil
}
