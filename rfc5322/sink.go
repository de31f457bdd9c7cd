package rfc5322

import (
	"io"
)

// out stages canonical output during a parse. Productions with alternatives
// take a mark before trying one, and reset to it when the alternative fails,
// so output of failed alternatives never reaches the caller's writer.
//
// A nil *out discards all output, for the Skip functions.
type out struct {
	buf []byte
}

func (o *out) write(buf []byte) {
	if o != nil {
		o.buf = append(o.buf, buf...)
	}
}

func (o *out) writeByte(c byte) {
	if o != nil {
		o.buf = append(o.buf, c)
	}
}

func (o *out) mark() int {
	if o == nil {
		return 0
	}
	return len(o.buf)
}

func (o *out) reset(mark int) {
	if o != nil {
		o.buf = o.buf[:mark]
	}
}

// production is the internal form of every grammar function: it parses at c,
// appends canonical output to o and returns the number of bytes consumed.
type production func(c Cursor, o *out) (int, *Error)

// skip runs fn without output and returns the number of bytes consumed.
func skip(c Cursor, fn production) (int, error) {
	n, err := fn(c, nil)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// run runs fn, and on success writes its output to w in a single write. A nil w
// is the same as calling skip.
func run(c Cursor, w io.Writer, fn production) (int, error) {
	if w == nil {
		return skip(c, fn)
	}
	o := &out{}
	n, err := fn(c, o)
	if err != nil {
		return 0, err
	}
	if err := commit(w, o.buf); err != nil {
		return 0, err
	}
	return n, nil
}

func commit(w io.Writer, buf []byte) *Error {
	if len(buf) == 0 {
		return nil
	}
	n, err := w.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errIO(err)
	}
	return nil
}

// first tries the productions in order, returning the result of the first that
// succeeds. Output of failed alternatives is discarded. If all fail, the error
// that got furthest into the input is returned, preferring earlier alternatives,
// with the error of the first alternative as cause. An IO error is returned
// immediately.
func first(c Cursor, o *out, fns ...production) (int, *Error) {
	n, _, err := firstOf(c, o, fns...)
	return n, err
}

// firstOf is like first, but also returns the index of the production that
// matched.
func firstOf(c Cursor, o *out, fns ...production) (int, int, *Error) {
	m := o.mark()
	var firstErr, best *Error
	for i, fn := range fns {
		n, err := fn(c, o)
		if err == nil {
			return n, i, nil
		}
		o.reset(m)
		if !recoverable(err) {
			return 0, -1, err
		}
		if firstErr == nil {
			firstErr = err
		}
		if best == nil || reach(c, err) > reach(c, best) {
			best = err
		}
	}
	if best != firstErr {
		best = withCause(best, firstErr)
	}
	return 0, -1, best
}

// reach returns how far into the input err occurred.
func reach(c Cursor, err *Error) int {
	if err.Kind == KindEOF {
		return len(c.buf)
	}
	return err.Position
}
