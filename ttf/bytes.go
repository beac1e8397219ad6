package ttf

// Reading bytes from a font's binary representation.
//
// ByteCursor is the workhorse of this package: a bounds-checked reader over
// an immutable byte buffer. All multi-byte reads are big-endian, as
// everything in an SFNT file is. A cursor never panics on malformed input;
// every read that would exceed the buffer fails with UnexpectedEOF carrying
// the position and requested size.

// ByteCursor is a sequential/random-access reader over a byte buffer.
// Cursors are ephemeral: one is created per parse call and discarded
// afterwards. Clone shares the underlying buffer and copies only the
// position; a clone is the mechanism for dereferencing an offset into
// another table region without disturbing the parent's position.
type ByteCursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data in a cursor positioned at offset 0.
// The buffer is shared, not copied.
func NewCursor(data []byte) *ByteCursor {
	return &ByteCursor{data: data}
}

// Pos returns the current position of the cursor.
func (c *ByteCursor) Pos() int { return c.pos }

// Len returns the length of the underlying buffer.
func (c *ByteCursor) Len() int { return len(c.data) }

// AtEnd reports whether the cursor has consumed the whole buffer.
func (c *ByteCursor) AtEnd() bool { return c.pos >= len(c.data) }

// Clone returns an independent cursor sharing the same buffer,
// positioned where c currently is.
func (c *ByteCursor) Clone() *ByteCursor {
	return &ByteCursor{data: c.data, pos: c.pos}
}

// Err wraps a free-text structural violation at the current position.
func (c *ByteCursor) Err(message string) error {
	return ParseError{Pos: c.pos, Message: message}
}

// AdvanceTo repositions the cursor at an absolute offset.
func (c *ByteCursor) AdvanceTo(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return UnexpectedEOF{Pos: offset}
	}
	c.pos = offset
	return nil
}

// AdvanceBy repositions the cursor relative to its current position.
// Negative deltas move backwards.
func (c *ByteCursor) AdvanceBy(delta int) error {
	return c.AdvanceTo(c.pos + delta)
}

// ReadFrom returns size bytes starting at an absolute offset, without
// moving the cursor. The returned slice aliases the input buffer.
func (c *ByteCursor) ReadFrom(offset, size int) ([]byte, error) {
	if offset < 0 || size < 0 || offset > len(c.data) || size > len(c.data)-offset {
		return nil, UnexpectedEOF{Pos: offset, Size: size}
	}
	return c.data[offset : offset+size], nil
}

// Read returns size bytes at the current position and advances past them.
// The returned slice aliases the input buffer.
func (c *ByteCursor) Read(size int) ([]byte, error) {
	if size < 0 || size > len(c.data)-c.pos {
		return nil, UnexpectedEOF{Pos: c.pos, Size: size}
	}
	b := c.data[c.pos : c.pos+size]
	c.pos += size
	return b, nil
}

// Skip advances past size bytes.
func (c *ByteCursor) Skip(size int) error {
	_, err := c.Read(size)
	return err
}

// SkipU16 advances past a 16 bit field.
func (c *ByteCursor) SkipU16() error { return c.skipField(2, "u16") }

// SkipU32 advances past a 32 bit field.
func (c *ByteCursor) SkipU32() error { return c.skipField(4, "u32") }

// SkipU64 advances past a 64 bit field.
func (c *ByteCursor) SkipU64() error { return c.skipField(8, "u64") }

func (c *ByteCursor) skipField(size int, field string) error {
	if err := c.Skip(size); err != nil {
		return withField(err, field)
	}
	return nil
}

// U8 reads an unsigned byte.
func (c *ByteCursor) U8() (uint8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, withField(err, "u8")
	}
	return b[0], nil
}

// I8 reads a signed byte.
func (c *ByteCursor) I8() (int8, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, withField(err, "i8")
	}
	return int8(b[0]), nil
}

// U16 reads a big-endian unsigned 16 bit integer.
func (c *ByteCursor) U16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, withField(err, "u16")
	}
	return u16(b), nil
}

// I16 reads a big-endian signed 16 bit integer.
func (c *ByteCursor) I16() (int16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, withField(err, "i16")
	}
	return int16(u16(b)), nil
}

// U24 reads a big-endian unsigned 24 bit integer.
func (c *ByteCursor) U24() (uint32, error) {
	b, err := c.Read(3)
	if err != nil {
		return 0, withField(err, "u24")
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads a big-endian unsigned 32 bit integer.
func (c *ByteCursor) U32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, withField(err, "u32")
	}
	return u32(b), nil
}

// Fixed32 reads a 16.16 fixed-point number and returns its integer and
// fractional halves unconverted. Version fields ('post', 'head') are
// compared half-wise, so no float conversion happens here.
func (c *ByteCursor) Fixed32() (int16, uint16, error) {
	i, err := c.I16()
	if err != nil {
		return 0, 0, withField(err, "fixed32")
	}
	frac, err := c.U16()
	if err != nil {
		return 0, 0, withField(err, "fixed32")
	}
	return i, frac, nil
}

// F2Dot14 reads a 2.14 fixed-point number as a float64. Scale factors in
// compound glyph components are stored in this format.
func (c *ByteCursor) F2Dot14() (float64, error) {
	v, err := c.I16()
	if err != nil {
		return 0, withField(err, "f2dot14")
	}
	return float64(v) / float64(1<<14), nil
}

// ReadString reads a fixed-length byte string. SFNT tags and Pascal-string
// glyph names are plain byte sequences; no charset decoding is applied.
func (c *ByteCursor) ReadString(size int) (string, error) {
	b, err := c.Read(size)
	if err != nil {
		return "", withField(err, "string")
	}
	return string(b), nil
}

// withField annotates an UnexpectedEOF with the wire field being decoded.
func withField(err error, field string) error {
	if eof, ok := err.(UnexpectedEOF); ok && eof.Field == "" {
		eof.Field = field
		return eof
	}
	return err
}

func u16(b []byte) uint16 {
	_ = b[1] // bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
