package rfc5322

import (
	"io"
)

// Folding white space and comments, RFC 5322 section 3.2.2.
//
//	FWS      = ([*WSP CRLF] 1*WSP) / obs-FWS
//	obs-FWS  = 1*WSP *(CRLF 1*WSP)
//	ctext    = %d33-39 / %d42-91 / %d93-126 / obs-ctext
//	ccontent = ctext / quoted-pair / comment
//	comment  = "(" *([FWS] ccontent) [FWS] ")"
//	CFWS     = (1*([FWS] comment) [FWS]) / FWS
//
// Taken together, FWS is a non-empty run of WSP and CRLF, with each CRLF
// followed by at least one WSP.

// fws parses FWS. With replace, the output is a single space. Otherwise the
// white space is written without the CRLFs.
func fws(c Cursor, o *out, replace bool) (int, *Error) {
	b := c.Remaining()
	if len(b) == 0 {
		return 0, errEOF()
	}
	var i, start int
	for i < len(b) {
		if IsWSP(b[i]) {
			i++
			continue
		}
		if b[i] == CR && i+2 < len(b) && b[i+1] == LF && IsWSP(b[i+2]) {
			if !replace {
				o.write(b[start:i])
			}
			i += 2
			start = i
			continue
		}
		break
	}
	if i == 0 {
		return 0, errToken(TokenFWS, c)
	}
	if replace {
		o.writeByte(SP)
	} else {
		o.write(b[start:i])
	}
	return i, nil
}

func unfoldFWS(c Cursor, o *out) (int, *Error) {
	return fws(c, o, false)
}

func replaceFWS(c Cursor, o *out) (int, *Error) {
	return fws(c, o, true)
}

// comment parses a possibly nested comment. Nesting is tracked with a counter,
// not with recursion, so input cannot exhaust the stack. Comments never produce
// output.
func comment(c Cursor) (int, *Error) {
	b := c.Remaining()
	if len(b) == 0 {
		return 0, errEOF()
	}
	if b[0] != '(' {
		return 0, errToken(TokenComment, c)
	}
	depth := 1
	for i := 1; i < len(b); i++ {
		switch ch := b[i]; {
		case ch == Backslash:
			// Quoted-pair, the next byte never opens or closes a comment.
			if i+1 >= len(b) {
				return 0, errEOF()
			}
			i++
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		case ch == CR:
			// Only a fold, CRLF followed by WSP.
			if len(b)-i == 1 || len(b)-i == 2 && b[i+1] == LF {
				return 0, errEOF()
			}
			if b[i+1] != LF || !IsWSP(b[i+2]) {
				return 0, errTokenAt(TokenComment, c, i)
			}
			i += 2
		case IsCtext(ch) || IsWSP(ch):
		default:
			return 0, errTokenAt(TokenComment, c, i)
		}
	}
	return 0, errEOF()
}

// cfws parses CFWS. With unfold, white space is written without CRLFs. Comments
// are never written.
//
// With nothing consumed, empty input and a comment cut off by the end of input
// are EOF errors, other input is a CFWS token error. CFWS that runs until the
// end of the input is valid.
func cfws(c Cursor, o *out, unfold bool) (int, *Error) {
	if c.Empty() {
		return 0, errEOF()
	}
	var fo *out
	if unfold {
		fo = o
	}
	var n int
	var cerr *Error
	for {
		if l, err := fws(c.advanced(n), fo, false); err == nil {
			n += l
		}
		l, err := comment(c.advanced(n))
		if err != nil {
			cerr = err
			break
		}
		n += l
	}
	if n > 0 {
		return n, nil
	}
	if cerr.Kind == KindEOF {
		return 0, cerr
	}
	return 0, withCause(errToken(TokenCFWS, c), cerr)
}

func skipCFWS(c Cursor, o *out) (int, *Error) {
	return cfws(c, nil, false)
}

func unfoldCFWS(c Cursor, o *out) (int, *Error) {
	return cfws(c, o, true)
}

func replaceCFWS(c Cursor, o *out) (int, *Error) {
	n, err := cfws(c, nil, false)
	if err != nil {
		return 0, err
	}
	o.writeByte(SP)
	return n, nil
}

// optCFWS returns the length of optional CFWS at c, 0 if absent.
func optCFWS(c Cursor) int {
	n, err := cfws(c, nil, false)
	if err != nil {
		return 0
	}
	return n
}

// SkipFWS returns the length of the folding white space at c.
func SkipFWS(c Cursor) (int, error) {
	return skip(c, unfoldFWS)
}

// UnfoldFWS parses folding white space at c and writes it to w without the
// CRLFs.
func UnfoldFWS(c Cursor, w io.Writer) (int, error) {
	return run(c, w, unfoldFWS)
}

// ReplaceFWS parses folding white space at c and writes a single space to w.
func ReplaceFWS(c Cursor, w io.Writer) (int, error) {
	return run(c, w, replaceFWS)
}

// SkipComment returns the length of the, possibly nested, comment at c.
func SkipComment(c Cursor) (int, error) {
	return skip(c, func(c Cursor, o *out) (int, *Error) {
		return comment(c)
	})
}

// SkipCFWS returns the length of the comments and folding white space at c.
func SkipCFWS(c Cursor) (int, error) {
	return skip(c, skipCFWS)
}

// UnfoldCFWS parses CFWS at c and writes its white space to w, without CRLFs
// and without the comments.
func UnfoldCFWS(c Cursor, w io.Writer) (int, error) {
	return run(c, w, unfoldCFWS)
}

// ReplaceCFWS parses CFWS at c and writes a single space to w.
func ReplaceCFWS(c Cursor, w io.Writer) (int, error) {
	return run(c, w, replaceCFWS)
}
