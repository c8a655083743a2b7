package paa

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bcn"
)

// Type is the 2-byte pixel format tag shared by every mipmap of a PAA.
// Any uint16 is representable so that files with unrecognized tags can
// still be parsed structurally; Known reports whether the value maps to
// a named format.
type Type uint16

const (
	// TypeIndexPalette is the legacy 8-bit palette-indexed format.
	// Recognized for round-tripping only; pixel conversion is unsupported.
	TypeIndexPalette Type = 0x4747
	// TypeAI88 is 8 bits alpha, 8 bits grayscale. Recognized for
	// round-tripping only; pixel conversion is unsupported.
	TypeAI88 Type = 0x8080
	// TypeARGB1555 is ARGB 1:5:5:5 packed into a little-endian uint16.
	TypeARGB1555 Type = 0x1555
	// TypeARGB4444 is ARGB 4:4:4:4 packed into a little-endian uint16.
	TypeARGB4444 Type = 0x4444
	// TypeARGB8888 is 32-bit ARGB.
	TypeARGB8888 Type = 0x8888
	// TypeDXT1 is BC1 block compression.
	TypeDXT1 Type = 0xFF01
	// TypeDXT2 is BC2 with premultiplied alpha. Decoded as DXT3.
	TypeDXT2 Type = 0xFF02
	// TypeDXT3 is BC2 block compression.
	TypeDXT3 Type = 0xFF03
	// TypeDXT4 is BC3 with premultiplied alpha. Decoded as DXT5.
	TypeDXT4 Type = 0xFF04
	// TypeDXT5 is BC3 block compression.
	TypeDXT5 Type = 0xFF05
)

var typeNames = map[Type]string{
	TypeIndexPalette: "IndexPalette",
	TypeAI88:         "AI88",
	TypeARGB1555:     "ARGB1555",
	TypeARGB4444:     "ARGB4444",
	TypeARGB8888:     "ARGB8888",
	TypeDXT1:         "DXT1",
	TypeDXT2:         "DXT2",
	TypeDXT3:         "DXT3",
	TypeDXT4:         "DXT4",
	TypeDXT5:         "DXT5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(0x%04X)", uint16(t))
}

// TypeFromName maps a TexConvert format keyword (case-insensitive) to a Type.
func TypeFromName(name string) (Type, bool) {
	upper := strings.ToUpper(name)
	for t, n := range typeNames {
		if strings.ToUpper(n) == upper {
			return t, true
		}
	}

	return 0, false
}

// Known reports whether the tag maps to a named format.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// IsDXTn reports whether the type is one of the DXT block formats.
func (t Type) IsDXTn() bool {
	switch t {
	case TypeDXT1, TypeDXT2, TypeDXT3, TypeDXT4, TypeDXT5:
		return true
	default:
		return false
	}
}

// IsARGB reports whether the type is one of the packed ARGB formats.
func (t Type) IsARGB() bool {
	switch t {
	case TypeARGB1555, TypeARGB4444, TypeARGB8888:
		return true
	default:
		return false
	}
}

// HasAlpha reports whether the type carries an alpha channel.
func (t Type) HasAlpha() bool {
	return t != TypeIndexPalette
}

// PredictSize returns the size in bytes of uncompressed mipmap data for the
// given dimensions, or -1 for an unknown tag.
func (t Type) PredictSize(width, height uint16) int {
	size := int(width) * int(height)

	switch t {
	case TypeDXT1:
		return size / 2
	case TypeDXT2, TypeDXT3, TypeDXT4, TypeDXT5, TypeIndexPalette:
		return size
	case TypeARGB1555, TypeARGB4444, TypeAI88:
		return size * 2
	case TypeARGB8888:
		return size * 4
	default:
		return -1
	}
}

// blockFormat maps a DXT type to the bcn codec format.
func (t Type) blockFormat() (bcn.Format, bool) {
	switch t {
	case TypeDXT1:
		return bcn.FormatDXT1, true
	case TypeDXT2, TypeDXT3:
		return bcn.FormatDXT3, true
	case TypeDXT4, TypeDXT5:
		return bcn.FormatDXT5, true
	default:
		return bcn.FormatUnknown, false
	}
}
