/*
Package paa implements Bohemia Interactive PAA texture container read/write
with the format's native LZO and LZSS mipmap compression.

PAA stores a 2-byte pixel format tag, a directory of TAGG metadata chunks
(average color, maximum color, transparency flags, channel swizzle, mipmap
offsets), an optional legacy index palette, and a chain of mipmap levels
ordered largest to smallest. DXTn levels may be LZO compressed (signalled by
the width's high bit); packed ARGB levels are LZSS compressed with a trailing
additive checksum.

The package focuses on practical workflows: parse a PAA and inspect its
metadata, decode any mipmap level into an *image.NRGBA, and encode an RGBA
image into a full mip chain using TexConvert.cfg texture hints (target
format, channel swizzle, autoreduction).
*/
package paa
