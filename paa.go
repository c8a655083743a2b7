package paa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
)

// maxMipmaps is the level cap imposed by the OFFS tagg: sixteen slots, the
// last of which must stay zero as the chain terminator.
const maxMipmaps = offsTaggCapacity - 1

// Image is a parsed PAA container: the shared pixel format, the TAGG
// metadata directory, an optional palette and the mipmap chain ordered
// largest first.
type Image struct {
	// Type is the pixel format shared by every mipmap.
	Type Type
	// Taggs is the metadata directory in on-disk order.
	Taggs Directory
	// Palette is the raw BGR triplet block of palette-indexed files.
	Palette []byte
	// Mipmaps is the level chain, largest first.
	Mipmaps []*Mipmap
}

// FromBytes parses a PAA container from memory.
func FromBytes(data []byte) (*Image, error) {
	r := bytes.NewReader(data)

	var tag uint16
	if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
		return nil, fmt.Errorf("%w: reading format tag: %v", ErrTruncated, err)
	}

	img := &Image{Type: Type(tag)}

	taggs, err := readDirectory(r)
	if err != nil {
		return nil, err
	}
	img.Taggs = taggs

	var paletteCount uint16
	if err := binary.Read(r, binary.LittleEndian, &paletteCount); err != nil {
		return nil, fmt.Errorf("%w: reading palette size: %v", ErrTruncated, err)
	}
	if paletteCount > 0 {
		palette := make([]byte, int(paletteCount)*3)
		if _, err := io.ReadFull(r, palette); err != nil {
			return nil, fmt.Errorf("%w: reading palette: %v", ErrTruncated, err)
		}
		img.Palette = palette
	}

	for {
		mip, err := readMipmap(r, img.Type)
		if err != nil {
			return nil, err
		}
		if mip == nil {
			break
		}
		img.Mipmaps = append(img.Mipmaps, mip)
	}

	return img, nil
}

// Read parses a PAA file.
func Read(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	return FromBytes(data)
}

// Decode reads all of r and parses it as a PAA container.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	return FromBytes(data)
}

// Bytes serializes the container. The OFFS tagg is regenerated from the
// actual mipmap layout, so any stored copy in Taggs is replaced and a
// parse/serialize round trip is byte-stable.
func (i *Image) Bytes() ([]byte, error) {
	if len(i.Mipmaps) == 0 {
		return nil, ErrEmptyImage
	}
	if len(i.Mipmaps) > maxMipmaps {
		return nil, fmt.Errorf("%w: %d levels", ErrTooManyMipmaps, len(i.Mipmaps))
	}
	if len(i.Palette)/3 > maxUint16 {
		return nil, ErrPaletteTooLarge
	}

	headerSize := 2
	for _, t := range i.Taggs {
		if t.Name == TaggOffs {
			continue
		}
		headerSize += taggSize(t)
	}
	headerSize += taggSize(newOffsTagg(nil))
	headerSize += 2 + len(i.Palette)

	offsets := make([]uint32, len(i.Mipmaps))
	offset := headerSize
	for idx, mip := range i.Mipmaps {
		offsets[idx] = uint32(offset)
		offset += mip.serializedSize()
	}

	var buf bytes.Buffer
	buf.Grow(offset + 6)

	_ = binary.Write(&buf, binary.LittleEndian, uint16(i.Type))
	for _, t := range i.Taggs {
		if t.Name == TaggOffs {
			continue
		}
		writeTagg(&buf, t)
	}
	writeTagg(&buf, newOffsTagg(offsets))

	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(i.Palette)/3))
	buf.Write(i.Palette)

	for _, mip := range i.Mipmaps {
		if err := writeMipmap(&buf, mip); err != nil {
			return nil, err
		}
	}
	buf.Write(make([]byte, 6))

	return buf.Bytes(), nil
}

// Write serializes the container to a file.
func (i *Image) Write(path string) error {
	data, err := i.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}

	return nil
}

// DecodeLevel decodes one mipmap into an NRGBA image.
func (i *Image) DecodeLevel(level int) (*image.NRGBA, error) {
	if level < 0 || level >= len(i.Mipmaps) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLevelIndex, level, len(i.Mipmaps))
	}

	return i.Mipmaps[level].Decode()
}

// DecodeFirst decodes the largest mipmap.
func (i *Image) DecodeFirst() (*image.NRGBA, error) {
	if len(i.Mipmaps) == 0 {
		return nil, ErrEmptyImage
	}

	return i.Mipmaps[0].Decode()
}
