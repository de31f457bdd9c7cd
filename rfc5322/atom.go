package rfc5322

import (
	"io"
)

// Atoms, RFC 5322 section 3.2.3.
//
//	atom          = [CFWS] 1*atext [CFWS]
//	dot-atom-text = 1*atext *("." 1*atext)
//	dot-atom      = [CFWS] dot-atom-text [CFWS]
//
// Only the atext and dot-atom-text are written, surrounding CFWS is not.

func atomText(c Cursor, o *out) (int, *Error) {
	t := c.ReadWhile(IsAtext)
	if len(t) == 0 {
		return 0, errToken(TokenAtext, c)
	}
	o.write(t)
	return len(t), nil
}

// dotAtomText consumes a "." only when atext follows, so a trailing dot is left
// for the caller.
func dotAtomText(c Cursor, o *out) (int, *Error) {
	b := c.Remaining()
	var i int
	for i < len(b) {
		if IsAtext(b[i]) {
			i++
		} else if b[i] == '.' && i > 0 && i+1 < len(b) && IsAtext(b[i+1]) {
			i += 2
		} else {
			break
		}
	}
	if i == 0 {
		return 0, errToken(TokenDotAtom, c)
	}
	o.write(b[:i])
	return i, nil
}

func wrapCFWS(c Cursor, o *out, fn production) (int, *Error) {
	n := optCFWS(c)
	l, err := fn(c.advanced(n), o)
	if err != nil {
		return 0, err
	}
	n += l
	n += optCFWS(c.advanced(n))
	return n, nil
}

func atom(c Cursor, o *out) (int, *Error) {
	return wrapCFWS(c, o, atomText)
}

func dotAtom(c Cursor, o *out) (int, *Error) {
	return wrapCFWS(c, o, dotAtomText)
}

// SkipAtom returns the length of the atom at c, including surrounding CFWS.
func SkipAtom(c Cursor) (int, error) {
	return skip(c, atom)
}

// ParseAtom parses the atom at c and writes its atext to w.
func ParseAtom(c Cursor, w io.Writer) (int, error) {
	return run(c, w, atom)
}

// SkipDotAtomText returns the length of the dot-atom-text at c, without CFWS.
func SkipDotAtomText(c Cursor) (int, error) {
	return skip(c, dotAtomText)
}

// SkipDotAtom returns the length of the dot-atom at c, including surrounding
// CFWS.
func SkipDotAtom(c Cursor) (int, error) {
	return skip(c, dotAtom)
}

// ParseDotAtom parses the dot-atom at c and writes its dot-atom-text to w.
func ParseDotAtom(c Cursor, w io.Writer) (int, error) {
	return run(c, w, dotAtom)
}
