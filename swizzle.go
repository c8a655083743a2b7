package paa

import (
	"fmt"
	"image"
	"strings"
)

// Channel identifies one of the four ARGB channels.
type Channel uint8

// Channel constants in ZIWS wire-id order.
const (
	ChannelAlpha Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

func (c Channel) String() string {
	switch c {
	case ChannelAlpha:
		return "A"
	case ChannelRed:
		return "R"
	case ChannelGreen:
		return "G"
	case ChannelBlue:
		return "B"
	default:
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
}

// pixIndex returns the channel's offset inside an NRGBA sample.
func (c Channel) pixIndex() int {
	switch c {
	case ChannelRed:
		return 0
	case ChannelGreen:
		return 1
	case ChannelBlue:
		return 2
	default:
		return 3
	}
}

// ChannelSwizzle describes how one output channel is produced: either a
// constant fill or a copy of a source channel, optionally negated.
type ChannelSwizzle struct {
	// Fill, when true, writes FillValue and ignores Source/Negate.
	Fill bool
	// FillValue is 0x00 or 0xFF.
	FillValue uint8
	// Negate stores 255 minus the source channel.
	Negate bool
	// Source is the input channel copied from.
	Source Channel
}

func (s ChannelSwizzle) String() string {
	switch {
	case s.Fill && s.FillValue == 0xFF:
		return "1"
	case s.Fill:
		return "0"
	case s.Negate:
		return "1-" + s.Source.String()
	default:
		return s.Source.String()
	}
}

// apply maps one NRGBA sample channel from src into dst.
func (s ChannelSwizzle) apply(target Channel, src, dst []uint8) {
	switch {
	case s.Fill:
		dst[target.pixIndex()] = s.FillValue
	case s.Negate:
		dst[target.pixIndex()] = 0xFF - src[s.Source.pixIndex()]
	default:
		dst[target.pixIndex()] = src[s.Source.pixIndex()]
	}
}

// isNoop reports whether the swizzle copies target onto itself.
func (s ChannelSwizzle) isNoop(target Channel) bool {
	return !s.Fill && !s.Negate && s.Source == target
}

// ParseChannelSwizzle parses a TexConvert channel source string: a channel
// letter ("R"), a negated channel ("1-R"), or a constant ("0", "1").
// Case-insensitive; interior whitespace is ignored.
func ParseChannelSwizzle(s string) (ChannelSwizzle, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(s), ""))

	switch clean {
	case "0":
		return ChannelSwizzle{Fill: true, FillValue: 0x00}, nil
	case "1":
		return ChannelSwizzle{Fill: true, FillValue: 0xFF}, nil
	}

	negate := false
	if strings.HasPrefix(clean, "1-") {
		negate = true
		clean = clean[2:]
	}

	var source Channel
	switch clean {
	case "A":
		source = ChannelAlpha
	case "R":
		source = ChannelRed
	case "G":
		source = ChannelGreen
	case "B":
		source = ChannelBlue
	default:
		return ChannelSwizzle{}, fmt.Errorf("%w: %q", ErrSwizzleString, s)
	}

	return ChannelSwizzle{Negate: negate, Source: source}, nil
}

// ZIWS wire byte layout, most significant bit first: four zero bits, one
// kind bit (0 source, 1 fill); source: one negate bit then a 2-bit channel
// id (A=0, R=1, G=2, B=3); fill: one zero bit then a 2-bit value
// (0 means 0xFF, 1 means 0x00).
const (
	swizKindFill = 0x08
	swizNegate   = 0x04
	swizFill00   = 0x01
)

// wireByte encodes the channel swizzle into its ZIWS byte.
func (s ChannelSwizzle) wireByte() uint8 {
	if s.Fill {
		b := uint8(swizKindFill)
		if s.FillValue == 0x00 {
			b |= swizFill00
		}
		return b
	}

	b := uint8(s.Source)
	if s.Negate {
		b |= swizNegate
	}
	return b
}

// channelSwizzleFromByte decodes one ZIWS byte.
func channelSwizzleFromByte(b uint8) (ChannelSwizzle, error) {
	if b&0xF0 != 0 {
		return ChannelSwizzle{}, fmt.Errorf("%w: 0x%02X", ErrSwizzleValue, b)
	}

	if b&swizKindFill != 0 {
		switch b & 0x07 {
		case 0:
			return ChannelSwizzle{Fill: true, FillValue: 0xFF}, nil
		case swizFill00:
			return ChannelSwizzle{Fill: true, FillValue: 0x00}, nil
		default:
			return ChannelSwizzle{}, fmt.Errorf("%w: 0x%02X", ErrSwizzleValue, b)
		}
	}

	return ChannelSwizzle{
		Negate: b&swizNegate != 0,
		Source: Channel(b & 0x03),
	}, nil
}

// Swizzle is a full ARGB channel remap, stored in the ZIWS tagg and driven
// by TexConvert channelSwizzle* settings.
type Swizzle struct {
	A, R, G, B ChannelSwizzle
}

// DefaultSwizzle returns the identity mapping.
func DefaultSwizzle() Swizzle {
	return Swizzle{
		A: ChannelSwizzle{Source: ChannelAlpha},
		R: ChannelSwizzle{Source: ChannelRed},
		G: ChannelSwizzle{Source: ChannelGreen},
		B: ChannelSwizzle{Source: ChannelBlue},
	}
}

// IsNoop reports whether every channel maps to itself.
func (s Swizzle) IsNoop() bool {
	return s.A.isNoop(ChannelAlpha) && s.R.isNoop(ChannelRed) &&
		s.G.isNoop(ChannelGreen) && s.B.isNoop(ChannelBlue)
}

func (s Swizzle) String() string {
	if s.IsNoop() {
		return "(no-op)"
	}

	return fmt.Sprintf("<a=%s> <r=%s> <g=%s> <b=%s>", s.A, s.R, s.G, s.B)
}

// wireBytes encodes the swizzle into its 4-byte ZIWS payload (A, R, G, B).
func (s Swizzle) wireBytes() [4]byte {
	return [4]byte{s.A.wireByte(), s.R.wireByte(), s.G.wireByte(), s.B.wireByte()}
}

// swizzleFromPayload decodes a 4-byte ZIWS payload.
func swizzleFromPayload(payload []byte) (Swizzle, error) {
	if len(payload) != 4 {
		return Swizzle{}, fmt.Errorf("%w: ZIWS payload length %d", ErrTaggPayload, len(payload))
	}

	var out Swizzle
	var err error
	if out.A, err = channelSwizzleFromByte(payload[0]); err != nil {
		return Swizzle{}, err
	}
	if out.R, err = channelSwizzleFromByte(payload[1]); err != nil {
		return Swizzle{}, err
	}
	if out.G, err = channelSwizzleFromByte(payload[2]); err != nil {
		return Swizzle{}, err
	}
	if out.B, err = channelSwizzleFromByte(payload[3]); err != nil {
		return Swizzle{}, err
	}

	return out, nil
}

// Apply remaps every pixel of img in place.
func (s Swizzle) Apply(img *image.NRGBA) {
	if s.IsNoop() {
		return
	}

	var src [4]uint8
	for i := 0; i+3 < len(img.Pix); i += 4 {
		pix := img.Pix[i : i+4]
		copy(src[:], pix)
		s.A.apply(ChannelAlpha, src[:], pix)
		s.R.apply(ChannelRed, src[:], pix)
		s.G.apply(ChannelGreen, src[:], pix)
		s.B.apply(ChannelBlue, src[:], pix)
	}
}
