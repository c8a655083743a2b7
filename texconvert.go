package paa

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// MipFilter is a TexConvert mipmap filter keyword. Filters are recognized
// and carried through settings; pixel-level filtering beyond plain
// downsampling is not applied.
type MipFilter uint8

const (
	MipFilterNone MipFilter = iota
	MipFilterAlphaNoise
	MipFilterFadeOut
	MipFilterAddAlphaNoise
	MipFilterNormalizeNormalMap
	MipFilterNormalizeNormalMapAlpha
	MipFilterNormalizeNormalMapNoise
	MipFilterNormalizeNormalMapFade
)

var mipFilterNames = map[MipFilter]string{
	MipFilterNone:                    "None",
	MipFilterAlphaNoise:              "AlphaNoise",
	MipFilterFadeOut:                 "FadeOut",
	MipFilterAddAlphaNoise:           "AddAlphaNoise",
	MipFilterNormalizeNormalMap:      "NormalizeNormalMap",
	MipFilterNormalizeNormalMapAlpha: "NormalizeNormalMapAlpha",
	MipFilterNormalizeNormalMapNoise: "NormalizeNormalMapNoise",
	MipFilterNormalizeNormalMapFade:  "NormalizeNormalMapFade",
}

func (f MipFilter) String() string {
	if name, ok := mipFilterNames[f]; ok {
		return name
	}

	return fmt.Sprintf("MipFilter(%d)", uint8(f))
}

// MipFilterFromName maps a TexConvert filter keyword (case-insensitive).
func MipFilterFromName(name string) (MipFilter, bool) {
	for f, n := range mipFilterNames {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}

	return 0, false
}

// TextureSettings is the per-suffix encoding configuration resolved from a
// TexConvert file.
type TextureSettings struct {
	// Format is the target pixel format.
	Format Type
	// Swizzle is the channel remap applied before encoding.
	Swizzle Swizzle
	// Autoreduce, when set, drops that many of the largest mipmap levels.
	Autoreduce *int
	// MipFilter is the requested mipmap filter keyword.
	MipFilter MipFilter
}

// DefaultTextureSettings returns the settings used when no suffix matches.
func DefaultTextureSettings() TextureSettings {
	return TextureSettings{Format: TypeDXT5, Swizzle: DefaultSwizzle()}
}

func (s TextureSettings) autoreduceSteps() int {
	if s.Autoreduce == nil || *s.Autoreduce < 0 {
		return 0
	}

	return *s.Autoreduce
}

// SettingsTable maps texture name suffixes to their encoding settings.
type SettingsTable struct {
	entries map[string]TextureSettings
}

// Get returns the settings for a suffix, case-insensitive.
func (t *SettingsTable) Get(suffix string) (TextureSettings, bool) {
	s, ok := t.entries[strings.ToUpper(suffix)]
	return s, ok
}

// Len returns the number of configured suffixes.
func (t *SettingsTable) Len() int {
	return len(t.entries)
}

// TextureFilenameToSuffix extracts the settings suffix from a texture file
// name: the uppercased stem segment after the last underscore.
func TextureFilenameToSuffix(path string) (string, bool) {
	stem := filepath.Base(path)
	if ext := filepath.Ext(stem); ext != "" {
		stem = stem[:len(stem)-len(ext)]
	}

	idx := strings.LastIndexByte(stem, '_')
	if idx < 0 || idx == len(stem)-1 {
		return "", false
	}

	return strings.ToUpper(stem[idx+1:]), true
}

// ParseError is a TexConvert syntax or value error with source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// ParseSettings parses TexConvert configuration text. Statements assign
// settings to one or more comma-separated suffixes:
//
//	SKY, SKYC: format=ARGB8888 autoreduce=1
//	NO: format=DXT5 A=1 R=1-G
//
// Parsing aborts at the first error.
func ParseSettings(text string) (*SettingsTable, error) {
	p := &parser{lex: lexer{src: text, line: 1, col: 1}}
	table := &SettingsTable{entries: make(map[string]TextureSettings)}

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return table, nil
		}
		p.push(tok)

		if err := p.statement(table); err != nil {
			return nil, err
		}
	}
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokColon
	tokComma
	tokAssign
	tokMinus
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokAssign:
		return "'='"
	case tokMinus:
		return "'-'"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func (l *lexer) errf(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return c
}

func (l *lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()

		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}

		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			for {
				if l.pos >= len(l.src) {
					return l.errf(line, col, "unterminated block comment")
				}
				if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}

		default:
			return nil
		}
	}

	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, col: l.col}, nil
	}

	line, col := l.line, l.col
	c := l.src[l.pos]

	switch {
	case c == ':':
		l.advance()
		return token{kind: tokColon, text: ":", line: line, col: col}, nil
	case c == ',':
		l.advance()
		return token{kind: tokComma, text: ",", line: line, col: col}, nil
	case c == '=':
		l.advance()
		return token{kind: tokAssign, text: "=", line: line, col: col}, nil
	case c == '-':
		l.advance()
		return token{kind: tokMinus, text: "-", line: line, col: col}, nil

	case c >= '0' && c <= '9':
		start := l.pos
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.advance()
		}
		return token{kind: tokNumber, text: l.src[start:l.pos], line: line, col: col}, nil

	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], line: line, col: col}, nil

	default:
		return token{}, l.errf(line, col, "unexpected character %q", string(c))
	}
}

type parser struct {
	lex     lexer
	pending []token
}

func (p *parser) next() (token, error) {
	if n := len(p.pending); n > 0 {
		tok := p.pending[n-1]
		p.pending = p.pending[:n-1]
		return tok, nil
	}

	return p.lex.next()
}

func (p *parser) push(tok token) {
	p.pending = append(p.pending, tok)
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok, err := p.next()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, p.errAt(tok, "expected %s, got %s", what, describe(tok))
	}

	return tok, nil
}

func (p *parser) errAt(tok token, format string, args ...any) *ParseError {
	return &ParseError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok token) string {
	if tok.kind == tokIdent || tok.kind == tokNumber {
		return fmt.Sprintf("%q", tok.text)
	}

	return tok.kind.String()
}

// statement parses `suffix {',' suffix} ':' {setting}` and stores the
// resolved settings under every listed suffix.
func (p *parser) statement(table *SettingsTable) error {
	var suffixes []string
	for {
		tok, err := p.expect(tokIdent, "texture suffix")
		if err != nil {
			return err
		}
		suffixes = append(suffixes, strings.ToUpper(tok.text))

		sep, err := p.next()
		if err != nil {
			return err
		}
		if sep.kind == tokColon {
			break
		}
		if sep.kind != tokComma {
			return p.errAt(sep, "expected ':' or ',' after suffix, got %s", describe(sep))
		}
	}

	settings := DefaultTextureSettings()
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.kind != tokIdent {
			p.push(tok)
			break
		}

		follow, err := p.next()
		if err != nil {
			return err
		}
		if follow.kind != tokAssign {
			// An identifier not followed by '=' starts the next statement.
			p.push(follow)
			p.push(tok)
			break
		}

		if err := p.setting(&settings, tok); err != nil {
			return err
		}
	}

	for _, suffix := range suffixes {
		table.entries[suffix] = settings
	}

	return nil
}

func (p *parser) setting(s *TextureSettings, name token) error {
	switch strings.ToLower(name.text) {
	case "format":
		tok, err := p.expect(tokIdent, "format name")
		if err != nil {
			return err
		}
		format, ok := TypeFromName(tok.text)
		if !ok {
			return p.errAt(tok, "unknown format %q", tok.text)
		}
		s.Format = format

	case "autoreduce":
		tok, err := p.expect(tokNumber, "autoreduce level count")
		if err != nil {
			return err
		}
		n, err2 := strconv.Atoi(tok.text)
		if err2 != nil {
			return p.errAt(tok, "invalid number %q", tok.text)
		}
		s.Autoreduce = &n

	case "mipfilter":
		tok, err := p.expect(tokIdent, "mipmap filter name")
		if err != nil {
			return err
		}
		filter, ok := MipFilterFromName(tok.text)
		if !ok {
			return p.errAt(tok, "unknown mipmap filter %q", tok.text)
		}
		s.MipFilter = filter

	case "a", "r", "g", "b":
		source, err := p.channelSource()
		if err != nil {
			return err
		}
		switch strings.ToLower(name.text) {
		case "a":
			s.Swizzle.A = source
		case "r":
			s.Swizzle.R = source
		case "g":
			s.Swizzle.G = source
		case "b":
			s.Swizzle.B = source
		}

	default:
		return p.errAt(name, "unknown setting %q", name.text)
	}

	return nil
}

// channelSource parses a swizzle source: a channel letter, a constant 0 or
// 1, or a negated channel `1-X`.
func (p *parser) channelSource() (ChannelSwizzle, error) {
	tok, err := p.next()
	if err != nil {
		return ChannelSwizzle{}, err
	}

	switch tok.kind {
	case tokIdent:
		cs, err := ParseChannelSwizzle(tok.text)
		if err != nil {
			return ChannelSwizzle{}, p.errAt(tok, "expected channel source, got %q", tok.text)
		}
		return cs, nil

	case tokNumber:
		switch tok.text {
		case "0":
			return ChannelSwizzle{Fill: true, FillValue: 0x00}, nil
		case "1":
			follow, err := p.next()
			if err != nil {
				return ChannelSwizzle{}, err
			}
			if follow.kind != tokMinus {
				p.push(follow)
				return ChannelSwizzle{Fill: true, FillValue: 0xFF}, nil
			}
			src, err := p.expect(tokIdent, "channel name after '1-'")
			if err != nil {
				return ChannelSwizzle{}, err
			}
			cs, perr := ParseChannelSwizzle(src.text)
			if perr != nil || cs.Fill {
				return ChannelSwizzle{}, p.errAt(src, "expected channel name after '1-', got %q", src.text)
			}
			cs.Negate = true
			return cs, nil
		default:
			return ChannelSwizzle{}, p.errAt(tok, "expected channel source, got %q", tok.text)
		}

	default:
		return ChannelSwizzle{}, p.errAt(tok, "expected channel source, got %s", describe(tok))
	}
}
