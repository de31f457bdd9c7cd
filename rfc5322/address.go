package rfc5322

import (
	"io"
)

// Address specification, RFC 5322 section 3.4.1 and obsolete forms of section
// 4.4.
//
//	addr-spec      = local-part "@" domain
//	local-part     = dot-atom / quoted-string / obs-local-part
//	domain         = dot-atom / domain-literal / obs-domain
//	domain-literal = [CFWS] "[" *([FWS] dtext) [FWS] "]" [CFWS]
//	dtext          = %d33-90 / %d94-126 / obs-dtext
//	obs-dtext      = obs-NO-WS-CTL / quoted-pair
//	obs-local-part = word *("." word)
//	obs-domain     = atom *("." atom)
//
// The obsolete local-part allows mixing atoms and quoted strings, and CFWS
// around the dots. It is only used when the strict form does not match, or when
// the strict form stops at a dot that the obsolete form continues past. The
// obsolete domain is read without CFWS between its atoms and dots, only around
// the whole domain, so it never matches more than a dot-atom.

// Address is a parsed addr-spec, in canonical form: without CFWS, quotes and
// escaping backslashes. A domain-literal keeps its brackets.
type Address struct {
	LocalPart []byte
	Domain    []byte

	// Set when the local-part or domain matched only an obsolete production.
	Obsolete bool
}

// String returns the address as "localpart@domain". The local-part is not
// quoted, so the result is not necessarily valid syntax.
func (a Address) String() string {
	return string(a.LocalPart) + "@" + string(a.Domain)
}

// dotList parses fn *("." fn), writing the dots. A dot not followed by a match
// of fn is left unconsumed.
func dotList(c Cursor, o *out, fn production) (int, *Error) {
	n, err := fn(c, o)
	if err != nil {
		return 0, err
	}
	for {
		cc := c.advanced(n)
		if ch, ok := cc.Peek(); !ok || ch != '.' {
			break
		}
		m := o.mark()
		o.writeByte('.')
		l, err := fn(cc.advanced(1), o)
		if err != nil {
			o.reset(m)
			if !recoverable(err) {
				return 0, err
			}
			break
		}
		n += 1 + l
	}
	return n, nil
}

func obsLocalPart(c Cursor, o *out) (int, *Error) {
	return dotList(c, o, word)
}

func obsDomain(c Cursor, o *out) (int, *Error) {
	return wrapCFWS(c, o, func(c Cursor, o *out) (int, *Error) {
		return dotList(c, o, atomText)
	})
}

// localPart returns whether only the obsolete form matched.
func localPart(c Cursor, o *out) (int, bool, *Error) {
	n, i, err := firstOf(c, o, dotAtom, quotedString, obsLocalPart)
	return n, i == 2, err
}

func domainLiteral(c Cursor, o *out) (int, *Error) {
	b := c.Remaining()
	n := optCFWS(c)
	if n >= len(b) {
		return 0, errEOF()
	}
	if b[n] != '[' {
		return 0, errTokenAt(TokenDomainLiteral, c, n)
	}
	m := o.mark()
	o.writeByte('[')
	n++
	for {
		if l, err := fws(c.advanced(n), o, true); err == nil {
			n += l
		}
		if n >= len(b) {
			o.reset(m)
			return 0, errEOF()
		}
		ch := b[n]
		if IsDtext(ch) {
			o.writeByte(ch)
			n++
			continue
		}
		if ch != Backslash {
			break
		}
		if n+1 >= len(b) {
			o.reset(m)
			return 0, errEOF()
		}
		if b[n+1] > 126 {
			o.reset(m)
			return 0, errTokenAt(TokenDomainLiteral, c, n+1)
		}
		o.writeByte(b[n+1])
		n += 2
	}
	if b[n] != ']' {
		o.reset(m)
		return 0, errTokenAt(TokenDomainLiteral, c, n)
	}
	o.writeByte(']')
	n++
	n += optCFWS(c.advanced(n))
	return n, nil
}

// domain returns whether only the obsolete form matched.
func domain(c Cursor, o *out) (int, bool, *Error) {
	n, i, err := firstOf(c, o, dotAtom, domainLiteral, obsDomain)
	return n, i == 2, err
}

// longer runs fn at c, and if it consumes more than the n bytes of an earlier
// match, replaces the output of o after mark m with that of fn.
func longer(c Cursor, o *out, m, n int, fn production) (int, bool) {
	var tmp *out
	if o != nil {
		tmp = &out{}
	}
	l, err := fn(c, tmp)
	if err != nil || l <= n {
		return 0, false
	}
	o.reset(m)
	if tmp != nil {
		o.write(tmp.buf)
	}
	return l, true
}

func atSign(c Cursor) bool {
	ch, ok := c.Peek()
	return ok && ch == '@'
}

// address parses an addr-spec, writing the local-part to lp and the domain to
// dom. Neither is written to when an error is returned.
func address(c Cursor, lp, dom *out) (int, bool, *Error) {
	lm := lp.mark()
	n, obsolete, err := localPart(c, lp)
	if err != nil {
		return 0, false, err
	}
	if !obsolete && !atSign(c.advanced(n)) {
		// E.g. `"a"."b"@example.org`, where the quoted-string stops early.
		obsAt := func(c Cursor, o *out) (int, *Error) {
			l, err := obsLocalPart(c, o)
			if err == nil && !atSign(c.advanced(l)) {
				return 0, errTokenAt(TokenAddress, c, l)
			}
			return l, err
		}
		if l, ok := longer(c, lp, lm, n, obsAt); ok {
			n = l
			obsolete = true
		}
	}
	if !atSign(c.advanced(n)) {
		lp.reset(lm)
		return 0, false, errTokenAt(TokenAddress, c, n)
	}
	n++
	l, domObsolete, err := domain(c.advanced(n), dom)
	if err != nil {
		lp.reset(lm)
		return 0, false, err
	}
	return n + l, obsolete || domObsolete, nil
}

// SkipLocalPart returns the length of the local-part at c.
func SkipLocalPart(c Cursor) (int, error) {
	return skip(c, func(c Cursor, o *out) (int, *Error) {
		n, _, err := localPart(c, o)
		return n, err
	})
}

// ParseLocalPart parses a local-part at c, trying dot-atom, quoted-string and
// obs-local-part in that order, and writes its canonical form to w.
func ParseLocalPart(c Cursor, w io.Writer) (int, error) {
	return run(c, w, func(c Cursor, o *out) (int, *Error) {
		n, _, err := localPart(c, o)
		return n, err
	})
}

// ParseObsLocalPart parses an obs-local-part at c and writes it to w, with the
// words joined by dots, without CFWS.
func ParseObsLocalPart(c Cursor, w io.Writer) (int, error) {
	return run(c, w, obsLocalPart)
}

// SkipDomain returns the length of the domain at c.
func SkipDomain(c Cursor) (int, error) {
	return skip(c, func(c Cursor, o *out) (int, *Error) {
		n, _, err := domain(c, o)
		return n, err
	})
}

// ParseDomain parses a domain at c, trying dot-atom, domain-literal and
// obs-domain in that order, and writes its canonical form to w.
func ParseDomain(c Cursor, w io.Writer) (int, error) {
	return run(c, w, func(c Cursor, o *out) (int, *Error) {
		n, _, err := domain(c, o)
		return n, err
	})
}

// ParseDomainLiteral parses a domain-literal at c and writes it to w, including
// the brackets, with folding white space replaced by a single space and escaping
// backslashes removed.
func ParseDomainLiteral(c Cursor, w io.Writer) (int, error) {
	return run(c, w, domainLiteral)
}

// ParseObsDomain parses an obs-domain at c and writes it to w, with the atoms
// joined by dots. CFWS is only allowed before and after the domain, not around
// the dots.
func ParseObsDomain(c Cursor, w io.Writer) (int, error) {
	return run(c, w, obsDomain)
}

// SkipAddress returns the length of the addr-spec at c.
func SkipAddress(c Cursor) (int, error) {
	n, _, err := address(c, nil, nil)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ParseAddress parses an addr-spec at c. It returns the address and the number
// of bytes consumed. Input after the address, e.g. a ">" or ",", is left to the
// caller.
func ParseAddress(c Cursor) (Address, int, error) {
	lp, dom := &out{}, &out{}
	n, obsolete, err := address(c, lp, dom)
	if err != nil {
		return Address{}, 0, err
	}
	return Address{lp.buf, dom.buf, obsolete}, n, nil
}
