package rfc5322

import (
	"bytes"
	"fmt"
)

// Cursor is a position in an immutable input buffer. Parse functions take a
// Cursor by value, so copying a Cursor is how a parse is restarted from an
// earlier position. The input is never modified.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor at the start of buf.
func NewCursor(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// NewCursorAt returns a cursor at offset in buf. Errors report positions
// relative to the start of buf.
func NewCursorAt(buf []byte, offset int) Cursor {
	c := Cursor{buf: buf}
	c.SetPosition(offset)
	return c
}

// Remaining returns the unconsumed bytes.
func (c Cursor) Remaining() []byte {
	return c.buf[c.pos:]
}

// Position returns the absolute offset into the input.
func (c Cursor) Position() int {
	return c.pos
}

// Empty returns whether all input has been consumed.
func (c Cursor) Empty() bool {
	return c.pos >= len(c.buf)
}

// Peek returns the next byte, and false at the end of the input.
func (c Cursor) Peek() (byte, bool) {
	if c.Empty() {
		return 0, false
	}
	return c.buf[c.pos], true
}

// SetPosition moves the cursor to an absolute offset. It panics if pos is
// outside the input.
func (c *Cursor) SetPosition(pos int) {
	if pos < 0 || pos > len(c.buf) {
		panic(fmt.Sprintf("cursor position %d outside input of %d bytes", pos, len(c.buf)))
	}
	c.pos = pos
}

// Advance moves the cursor n bytes forward.
func (c *Cursor) Advance(n int) {
	c.SetPosition(c.pos + n)
}

// advanced returns a copy of c moved n bytes forward.
func (c Cursor) advanced(n int) Cursor {
	c.Advance(n)
	return c
}

// Read consumes and returns the next n bytes. If fewer than n bytes remain, an
// EOF error is returned and nothing is consumed.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n > len(c.buf)-c.pos {
		return nil, errEOF()
	}
	r := c.buf[c.pos : c.pos+n]
	c.pos += n
	return r, nil
}

// ReadUntil consumes up to and including the first occurrence of b, and returns
// the bytes before b. If b does not occur, an EOF error is returned and nothing
// is consumed.
func (c *Cursor) ReadUntil(b byte) ([]byte, error) {
	i := bytes.IndexByte(c.Remaining(), b)
	if i < 0 {
		return nil, errEOF()
	}
	r := c.buf[c.pos : c.pos+i]
	c.pos += i + 1
	return r, nil
}

// ReadWhile consumes and returns bytes as long as fn returns true. The result
// can be empty.
func (c *Cursor) ReadWhile(fn func(b byte) bool) []byte {
	o := c.pos
	for c.pos < len(c.buf) && fn(c.buf[c.pos]) {
		c.pos++
	}
	return c.buf[o:c.pos]
}
