package paa

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func buildTagg(name string, payload []byte) []byte {
	var buf bytes.Buffer
	writeTagg(&buf, Tagg{Name: name, Payload: payload})
	return buf.Bytes()
}

func TestReadDirectory(t *testing.T) {
	var raw []byte
	raw = append(raw, buildTagg(TaggAvgc, []byte{1, 2, 3, 4})...)
	raw = append(raw, buildTagg("XXXX", []byte{0xDE, 0xAD})...)
	raw = append(raw, 0x00, 0x00, 0x02, 0x00) // palette count and mip width

	r := bytes.NewReader(raw)
	dir, err := readDirectory(r)
	if err != nil {
		t.Fatalf("readDirectory: %v", err)
	}

	if len(dir) != 2 {
		t.Fatalf("got %d taggs, want 2", len(dir))
	}
	if dir[0].Name != TaggAvgc || dir[1].Name != "XXXX" {
		t.Errorf("tagg names = %s, %s", dir[0].Name, dir[1].Name)
	}
	if !bytes.Equal(dir[1].Payload, []byte{0xDE, 0xAD}) {
		t.Errorf("unknown tagg payload = % X", dir[1].Payload)
	}

	// The non-GGAT marker must stay unconsumed.
	if r.Len() != 4 {
		t.Errorf("reader has %d bytes left, want 4", r.Len())
	}
}

func TestReadDirectoryTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(taggSignature)
	buf.WriteString(TaggAvgc)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(100))
	buf.Write([]byte{1, 2})

	_, err := readDirectory(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDirectoryColorAccessors(t *testing.T) {
	dir := Directory{
		{Name: TaggAvgc, Payload: []byte{10, 20, 30, 40}},
		{Name: TaggMaxc, Payload: []byte{50, 60, 70, 80}},
	}

	avg, err := dir.AverageColor()
	if err != nil {
		t.Fatalf("AverageColor: %v", err)
	}
	if avg != (Color{B: 10, G: 20, R: 30, A: 40}) {
		t.Errorf("AverageColor = %+v", avg)
	}

	maxc, err := dir.MaxColor()
	if err != nil {
		t.Fatalf("MaxColor: %v", err)
	}
	if maxc != (Color{B: 50, G: 60, R: 70, A: 80}) {
		t.Errorf("MaxColor = %+v", maxc)
	}
}

func TestDirectoryLastWins(t *testing.T) {
	dir := Directory{
		{Name: TaggAvgc, Payload: []byte{1, 1, 1, 1}},
		{Name: TaggAvgc, Payload: []byte{2, 2, 2, 2}},
	}

	avg, err := dir.AverageColor()
	if err != nil {
		t.Fatalf("AverageColor: %v", err)
	}
	if avg != (Color{B: 2, G: 2, R: 2, A: 2}) {
		t.Errorf("AverageColor = %+v, want the later entry", avg)
	}
}

func TestDirectoryMissing(t *testing.T) {
	var dir Directory

	if _, err := dir.AverageColor(); !errors.Is(err, ErrTaggMissing) {
		t.Errorf("AverageColor err = %v", err)
	}
	if _, err := dir.Transparency(); !errors.Is(err, ErrTaggMissing) {
		t.Errorf("Transparency err = %v", err)
	}
	if _, err := dir.Swizzle(); !errors.Is(err, ErrTaggMissing) {
		t.Errorf("Swizzle err = %v", err)
	}
	if _, err := dir.Offsets(); !errors.Is(err, ErrTaggMissing) {
		t.Errorf("Offsets err = %v", err)
	}
	if _, err := dir.ProcText(); !errors.Is(err, ErrTaggMissing) {
		t.Errorf("ProcText err = %v", err)
	}
}

func TestDirectoryMalformedPayloads(t *testing.T) {
	dir := Directory{
		{Name: TaggAvgc, Payload: []byte{1, 2}},
		{Name: TaggFlag, Payload: []byte{9, 0, 0, 0}},
		{Name: TaggSwiz, Payload: []byte{0xFF, 0, 0, 0}},
		{Name: TaggOffs, Payload: []byte{1, 2, 3}},
	}

	if _, err := dir.AverageColor(); !errors.Is(err, ErrTaggPayload) {
		t.Errorf("AverageColor err = %v", err)
	}
	if _, err := dir.Transparency(); !errors.Is(err, ErrTransparencyValue) {
		t.Errorf("Transparency err = %v", err)
	}
	if _, err := dir.Swizzle(); !errors.Is(err, ErrSwizzleValue) {
		t.Errorf("Swizzle err = %v", err)
	}
	if _, err := dir.Offsets(); !errors.Is(err, ErrTaggPayload) {
		t.Errorf("Offsets err = %v", err)
	}
}

func TestDirectoryTransparency(t *testing.T) {
	dir := Directory{{Name: TaggFlag, Payload: []byte{1, 0, 0, 0}}}

	flag, err := dir.Transparency()
	if err != nil {
		t.Fatalf("Transparency: %v", err)
	}
	if flag != TransparencyAlphaInterpolated {
		t.Errorf("Transparency = %v", flag)
	}
}

func TestOffsetsTruncateAtZero(t *testing.T) {
	dir := Directory{newOffsTagg([]uint32{100, 200, 300})}

	offsets, err := dir.Offsets()
	if err != nil {
		t.Fatalf("Offsets: %v", err)
	}
	want := []uint32{100, 200, 300}
	if len(offsets) != len(want) {
		t.Fatalf("got %d offsets, want %d", len(offsets), len(want))
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets[%d] = %d, want %d", i, offsets[i], want[i])
		}
	}

	if got := len(dir[0].Payload); got != 64 {
		t.Errorf("OFFS payload length = %d, want 64", got)
	}
}

func TestSwizzleTaggRoundTrip(t *testing.T) {
	want := Swizzle{
		A: ChannelSwizzle{Source: ChannelAlpha},
		R: ChannelSwizzle{Negate: true, Source: ChannelRed},
		G: ChannelSwizzle{Fill: true, FillValue: 0xFF},
		B: ChannelSwizzle{Source: ChannelBlue},
	}
	dir := Directory{newSwizTagg(want)}

	got, err := dir.Swizzle()
	if err != nil {
		t.Fatalf("Swizzle: %v", err)
	}
	if got != want {
		t.Errorf("Swizzle = %+v, want %+v", got, want)
	}
}
