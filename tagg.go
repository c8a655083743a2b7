package paa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
)

// taggSignature is the on-disk chunk marker ("TAGG" reversed).
const taggSignature = "GGAT"

// Recognized tagg names as stored on disk (4-byte reversed ASCII).
const (
	// TaggAvgc holds the average texture color (BGRA).
	TaggAvgc = "CGVA"
	// TaggMaxc holds the per-channel maximum color (BGRA).
	TaggMaxc = "CXAM"
	// TaggFlag holds texture flags; byte 0 is the transparency mode.
	TaggFlag = "GALF"
	// TaggSwiz holds the ARGB channel swizzle used during encoding.
	TaggSwiz = "ZIWS"
	// TaggProc holds procedural texture source text.
	TaggProc = "CORP"
	// TaggOffs holds 16 little-endian uint32 mipmap file offsets.
	TaggOffs = "SFFO"
)

// Tagg is one named metadata chunk from a PAA header. Unrecognized names
// are preserved verbatim so vendor-specific metadata survives a round trip.
type Tagg struct {
	// Name is the on-disk 4-byte identifier, e.g. "CGVA".
	Name string
	// Payload is the raw chunk body.
	Payload []byte
}

func (t Tagg) String() string {
	return fmt.Sprintf("%s[%d]", t.Name, len(t.Payload))
}

// Directory is the insertion-ordered TAGG collection of a PAA image.
type Directory []Tagg

// Color is the BGRA8888 color carried by AVGC and MAXC taggs.
type Color struct {
	B, G, R, A uint8
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("<r=%.3f> <g=%.3f> <b=%.3f> <a=%.3f>",
		float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// Transparency is the alpha interpolation mode from the FLAG tagg.
type Transparency uint8

const (
	// TransparencyNone disables transparency.
	TransparencyNone Transparency = 0
	// TransparencyAlphaInterpolated enables interpolated alpha.
	TransparencyAlphaInterpolated Transparency = 1
	// TransparencyAlphaNotInterpolated enables alpha without interpolation.
	TransparencyAlphaNotInterpolated Transparency = 2
)

func (t Transparency) String() string {
	switch t {
	case TransparencyNone:
		return "<no transparency>"
	case TransparencyAlphaInterpolated:
		return "<transparent, interpolated alpha>"
	case TransparencyAlphaNotInterpolated:
		return "<transparent, non-interpolated alpha>"
	default:
		return fmt.Sprintf("Transparency(%d)", uint8(t))
	}
}

// readDirectory reads taggs until the first non-GGAT marker, which starts
// the palette/mipmap section; the reader is left positioned on that marker.
func readDirectory(r *bytes.Reader) (Directory, error) {
	var dir Directory

	for {
		var marker [4]byte
		if _, err := io.ReadFull(r, marker[:]); err != nil {
			return nil, fmt.Errorf("%w: reading tagg marker: %v", ErrTruncated, err)
		}

		if string(marker[:]) != taggSignature {
			if _, err := r.Seek(-4, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			return dir, nil
		}

		var name [4]byte
		if _, err := io.ReadFull(r, name[:]); err != nil {
			return nil, fmt.Errorf("%w: reading tagg name: %v", ErrTruncated, err)
		}

		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, fmt.Errorf("%w: reading tagg length: %v", ErrTruncated, err)
		}
		if int64(length) > int64(r.Len()) {
			return nil, fmt.Errorf("%w: tagg %q payload of %d bytes beyond EOF", ErrTruncated, name[:], length)
		}

		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("%w: reading tagg payload: %v", ErrTruncated, err)
		}

		dir = append(dir, Tagg{Name: string(name[:]), Payload: payload})
	}
}

// writeTagg serializes one tagg entry.
func writeTagg(buf *bytes.Buffer, t Tagg) {
	buf.WriteString(taggSignature)
	buf.WriteString(t.Name)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(t.Payload)))
	buf.Write(t.Payload)
}

// find returns the payload of the last tagg with the given name. Duplicate
// recognized taggs resolve last-wins.
func (d Directory) find(name string) ([]byte, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Name == name {
			return d[i].Payload, true
		}
	}

	return nil, false
}

func (d Directory) color(name string) (Color, error) {
	payload, ok := d.find(name)
	if !ok {
		return Color{}, ErrTaggMissing
	}
	if len(payload) != 4 {
		return Color{}, fmt.Errorf("%w: %s payload length %d", ErrTaggPayload, name, len(payload))
	}

	return Color{B: payload[0], G: payload[1], R: payload[2], A: payload[3]}, nil
}

// AverageColor returns the AVGC tagg color, or ErrTaggMissing.
func (d Directory) AverageColor() (Color, error) {
	return d.color(TaggAvgc)
}

// MaxColor returns the MAXC tagg color, or ErrTaggMissing.
func (d Directory) MaxColor() (Color, error) {
	return d.color(TaggMaxc)
}

// Transparency returns the FLAG tagg transparency mode, or ErrTaggMissing.
func (d Directory) Transparency() (Transparency, error) {
	payload, ok := d.find(TaggFlag)
	if !ok {
		return 0, ErrTaggMissing
	}
	if len(payload) != 4 {
		return 0, fmt.Errorf("%w: FLAG payload length %d", ErrTaggPayload, len(payload))
	}
	if payload[0] > uint8(TransparencyAlphaNotInterpolated) {
		return 0, fmt.Errorf("%w: 0x%02X", ErrTransparencyValue, payload[0])
	}

	return Transparency(payload[0]), nil
}

// Swizzle returns the ZIWS tagg channel mapping, or ErrTaggMissing.
func (d Directory) Swizzle() (Swizzle, error) {
	payload, ok := d.find(TaggSwiz)
	if !ok {
		return Swizzle{}, ErrTaggMissing
	}

	return swizzleFromPayload(payload)
}

// Offsets returns the SFFO tagg mipmap offsets truncated at the first zero,
// or ErrTaggMissing.
func (d Directory) Offsets() ([]uint32, error) {
	payload, ok := d.find(TaggOffs)
	if !ok {
		return nil, ErrTaggMissing
	}
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("%w: OFFS payload length %d", ErrTaggPayload, len(payload))
	}

	offsets := make([]uint32, 0, len(payload)/4)
	for i := 0; i < len(payload); i += 4 {
		v := binary.LittleEndian.Uint32(payload[i : i+4])
		if v == 0 {
			break
		}
		offsets = append(offsets, v)
	}

	return offsets, nil
}

// ProcText returns the CORP procedural texture source, or ErrTaggMissing.
// The text is recognized but not interpreted.
func (d Directory) ProcText() ([]byte, error) {
	payload, ok := d.find(TaggProc)
	if !ok {
		return nil, ErrTaggMissing
	}

	return payload, nil
}

// newColorTagg builds an AVGC or MAXC tagg.
func newColorTagg(name string, c Color) Tagg {
	return Tagg{Name: name, Payload: []byte{c.B, c.G, c.R, c.A}}
}

// newFlagTagg builds a FLAG tagg.
func newFlagTagg(t Transparency) Tagg {
	return Tagg{Name: TaggFlag, Payload: []byte{uint8(t), 0, 0, 0}}
}

// newSwizTagg builds a ZIWS tagg.
func newSwizTagg(s Swizzle) Tagg {
	wire := s.wireBytes()
	return Tagg{Name: TaggSwiz, Payload: wire[:]}
}

// offsTaggCapacity is the fixed offset-slot count of an OFFS tagg, which
// bounds the mipmap count of a PAA at 15 levels plus the terminator.
const offsTaggCapacity = 16

// newOffsTagg builds an SFFO tagg; unused slots stay zero.
func newOffsTagg(offsets []uint32) Tagg {
	payload := make([]byte, offsTaggCapacity*4)
	for i, off := range offsets {
		if i >= offsTaggCapacity {
			break
		}
		binary.LittleEndian.PutUint32(payload[i*4:], off)
	}

	return Tagg{Name: TaggOffs, Payload: payload}
}

// taggSize is the serialized size of a tagg entry.
func taggSize(t Tagg) int {
	return 4 + 4 + 4 + len(t.Payload)
}
