package rfc5322

import (
	"io"
)

// Quoted strings, RFC 5322 sections 3.2.1 and 3.2.4.
//
//	quoted-pair   = ("\" (VCHAR / WSP)) / obs-qp
//	obs-qp        = "\" (%d0 / obs-NO-WS-CTL / LF / CR)
//	qtext         = %d33 / %d35-91 / %d93-126 / obs-qtext
//	qcontent      = qtext / quoted-pair
//	quoted-string = [CFWS] DQUOTE *([FWS] qcontent) [FWS] DQUOTE [CFWS]
//
// Together, a quoted-pair is a backslash followed by any byte 0-127. The
// backslash is not part of the value.

// qcontent parses a run of qtext and quoted-pairs, and writes it without the
// escaping backslashes.
func qcontent(c Cursor, o *out) (int, *Error) {
	b := c.Remaining()
	if len(b) == 0 {
		return 0, errEOF()
	}
	m := o.mark()
	var i, start int
	for i < len(b) {
		ch := b[i]
		if IsQtext(ch) {
			i++
			continue
		}
		if ch != Backslash {
			break
		}
		o.write(b[start:i])
		if i+1 >= len(b) {
			o.reset(m)
			return 0, errEOF()
		}
		if b[i+1] > 127 {
			o.reset(m)
			return 0, errTokenAt(TokenQuotedString, c, i+1)
		}
		start = i + 1
		i += 2
	}
	if i == 0 {
		return 0, errToken(TokenQtext, c)
	}
	o.write(b[start:i])
	return i, nil
}

// quotedText parses DQUOTE *([FWS] qcontent) [FWS] DQUOTE, writing the content
// between the quotes, with FWS as a single space.
func quotedText(c Cursor, o *out) (int, *Error) {
	b := c.Remaining()
	if len(b) == 0 {
		return 0, errEOF()
	}
	if b[0] != DQUOTE {
		return 0, errToken(TokenQuotedString, c)
	}
	m := o.mark()
	n := 1
	for {
		if l, err := fws(c.advanced(n), o, true); err == nil {
			n += l
		}
		ch, ok := c.advanced(n).Peek()
		if !ok || !IsQtext(ch) && ch != Backslash {
			break
		}
		l, err := qcontent(c.advanced(n), o)
		if err != nil {
			o.reset(m)
			return 0, err
		}
		n += l
	}
	if n >= len(b) {
		o.reset(m)
		return 0, errEOF()
	}
	if b[n] != DQUOTE {
		o.reset(m)
		return 0, errTokenAt(TokenQuotedString, c, n)
	}
	return n + 1, nil
}

// quotedString parses a quoted-string including surrounding CFWS, which is not
// written.
func quotedString(c Cursor, o *out) (int, *Error) {
	n := optCFWS(c)
	l, err := quotedText(c.advanced(n), o)
	if err != nil {
		return 0, err
	}
	n += l
	n += optCFWS(c.advanced(n))
	return n, nil
}

// SkipQcontent returns the length of the run of qtext and quoted-pairs at c.
func SkipQcontent(c Cursor) (int, error) {
	return skip(c, qcontent)
}

// UnescapeQcontent parses a run of qtext and quoted-pairs at c, and writes it to w
// without the escaping backslashes.
func UnescapeQcontent(c Cursor, w io.Writer) (int, error) {
	return run(c, w, qcontent)
}

// SkipQuotedString returns the length of the quoted-string at c, including
// surrounding CFWS.
func SkipQuotedString(c Cursor) (int, error) {
	return skip(c, quotedString)
}

// ParseQuotedString parses the quoted-string at c and writes its value to w:
// without quotes, surrounding CFWS and escaping backslashes, and with folding
// white space inside the quotes replaced by a single space.
func ParseQuotedString(c Cursor, w io.Writer) (int, error) {
	return run(c, w, quotedString)
}
