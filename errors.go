package paa

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrTruncated indicates the container ended before a required field.
	ErrTruncated = errors.New("container truncated")
	// ErrUnknownFormat indicates a format tag that maps to no known type.
	ErrUnknownFormat = errors.New("unknown format tag")
	// ErrUnsupportedFormat indicates a recognized type with no pixel codec.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrUnsupportedCompression indicates a compression with no codec.
	ErrUnsupportedCompression = errors.New("unsupported compression")
	// ErrPixelData indicates mipmap pixel data of unexpected length.
	ErrPixelData = errors.New("pixel data length mismatch")
	// ErrSizeMismatch indicates decompressed size differs from the declared size.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
	// ErrLZODecompress indicates LZO decompression failed.
	ErrLZODecompress = errors.New("LZO decompression failed")
	// ErrLZSSDecompress indicates LZSS decompression failed.
	ErrLZSSDecompress = errors.New("LZSS decompression failed")
	// ErrLZSSCompress indicates LZSS compression failed.
	ErrLZSSCompress = errors.New("LZSS compression failed")
	// ErrTaggMissing indicates the directory has no tagg of the requested kind.
	ErrTaggMissing = errors.New("tagg not present")
	// ErrTaggPayload indicates a recognized tagg with a malformed payload.
	ErrTaggPayload = errors.New("malformed tagg payload")
	// ErrSwizzleValue indicates unknown bits in a ZIWS swizzle byte.
	ErrSwizzleValue = errors.New("unknown swizzle value")
	// ErrSwizzleString indicates an unparsable swizzle source string.
	ErrSwizzleString = errors.New("invalid swizzle string")
	// ErrTransparencyValue indicates an unknown FLAG transparency byte.
	ErrTransparencyValue = errors.New("unknown transparency value")
	// ErrEmptyMipmap indicates a mipmap with a zero dimension where a real
	// level was required.
	ErrEmptyMipmap = errors.New("empty mipmap")
	// ErrMipmapTooLarge indicates mipmap dimensions or payload beyond limits.
	ErrMipmapTooLarge = errors.New("mipmap too large")
	// ErrMipmapDimensions indicates DXTn dimensions that are not a power of
	// two or are smaller than one block.
	ErrMipmapDimensions = errors.New("invalid DXTn mipmap dimensions")
	// ErrMipmapDataSize indicates uncompressed data not matching the size
	// predicted from dimensions.
	ErrMipmapDataSize = errors.New("mipmap data size mismatch")
	// ErrLevelIndex indicates a mipmap index out of range.
	ErrLevelIndex = errors.New("mipmap index out of range")
	// ErrTooManyMipmaps indicates more levels than the OFFS tagg can address.
	ErrTooManyMipmaps = errors.New("too many mipmaps")
	// ErrEmptyImage indicates an image with no mipmaps where one is required.
	ErrEmptyImage = errors.New("image has no mipmaps")
	// ErrPaletteTooLarge indicates a palette with more than 65535 colors.
	ErrPaletteTooLarge = errors.New("palette too large")
	// ErrOpenFile indicates a PAA file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates a PAA file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrEncodeImage indicates pixel encoding of a level failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrDecodeImage indicates pixel decoding of a level failed.
	ErrDecodeImage = errors.New("decode image failed")
)
