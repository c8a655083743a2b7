package paa

import (
	"bytes"
	"fmt"

	"github.com/rasky/go-lzo"
	"github.com/woozymasta/lzss"
)

// Compression is the byte-compression layer applied to one mipmap payload,
// on top of whatever pixel encoding the level already uses.
type Compression uint8

const (
	// CompressionNone stores the pixel data as-is.
	CompressionNone Compression = iota
	// CompressionLZO is LZO1X, used for DXTn levels (width high bit set).
	CompressionLZO
	// CompressionLZSS is LZSS with a trailing 4-byte additive checksum,
	// used for packed ARGB and AI88 levels.
	CompressionLZSS
	// CompressionRLE is the legacy PackBits-style scheme of index palette
	// levels. Recognized for round-tripping only.
	CompressionRLE
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZO:
		return "LZO"
	case CompressionLZSS:
		return "LZSS"
	case CompressionRLE:
		return "RLE"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// suggestCompression returns the compression PAA encoders use for a level of
// the given type and dimensions: LZO for large DXTn levels, LZSS for packed
// formats, nothing otherwise.
func suggestCompression(t Type, width, height uint16) Compression {
	if t.IsDXTn() {
		if dxtnNeedsLZO(width, height) {
			return CompressionLZO
		}
		return CompressionNone
	}
	if t == TypeIndexPalette {
		return CompressionRLE
	}

	return CompressionLZSS
}

// dxtnNeedsLZO reports whether a DXTn level of the given size is worth the
// LZO pass. Small levels stay uncompressed: block data is already dense.
func dxtnNeedsLZO(width, height uint16) bool {
	return uint32(width)*uint32(height) >= 256*256
}

// decompress inflates a mipmap payload to exactly expected bytes.
func (c Compression) decompress(payload []byte, expected int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, expected, len(payload))
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil

	case CompressionLZO:
		out, err := lzo.Decompress1X(bytes.NewReader(payload), len(payload), expected)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZODecompress, err)
		}
		if len(out) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, expected, len(out))
		}
		return out, nil

	case CompressionLZSS:
		out, err := lzss.Decompress(payload, expected, lzss.SignedLenientOptions())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZSSDecompress, err)
		}
		if len(out) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, expected, len(out))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}

// compress deflates uncompressed pixel data into a mipmap payload.
func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil

	case CompressionLZO:
		return lzo.Compress1X(data), nil

	case CompressionLZSS:
		out, err := lzss.Compress(data, &lzss.CompressOptions{
			Checksum:    lzss.ChecksumSigned,
			SearchLimit: 2048,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZSSCompress, err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}
