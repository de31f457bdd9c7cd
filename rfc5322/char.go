package rfc5322

// Input is treated as US-ASCII bytes, as in RFC 5322. The UTF-8 extensions of
// RFC 6532 to ctext, atext, qtext and dtext are not accepted.

const (
	CR        = '\r'
	LF        = '\n'
	SP        = ' '
	HTAB      = '\t'
	DQUOTE    = '"'
	Backslash = '\\'
	DEL       = 0x7f
)

// IsAlpha returns whether c is an ASCII letter.
func IsAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// IsDigit returns whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsWSP returns whether c is a space or horizontal tab.
func IsWSP(c byte) bool {
	return c == SP || c == HTAB
}

// IsVchar returns whether c is a visible (printing) character, %d33-126.
func IsVchar(c byte) bool {
	return c >= 33 && c <= 126
}

// IsObsNoWSCtl returns whether c is a control character other than NUL, CR, LF
// and white space:
//
//	obs-NO-WS-CTL = %d1-8 / %d11 / %d12 / %d14-31 / %d127
func IsObsNoWSCtl(c byte) bool {
	return c >= 1 && c <= 8 || c == 11 || c == 12 || c >= 14 && c <= 31 || c == DEL
}

// IsAtext returns whether c can be part of an atom.
func IsAtext(c byte) bool {
	if IsAlpha(c) || IsDigit(c) {
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

// IsSpecial returns whether c is one of the specials, the printable characters
// that are not atext.
func IsSpecial(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', DQUOTE:
		return true
	}
	return false
}

// IsQtext returns whether c can appear unescaped in a quoted string, including
// obs-qtext.
func IsQtext(c byte) bool {
	return c == 33 || c >= 35 && c <= 91 || c >= 93 && c <= 126 || IsObsNoWSCtl(c)
}

// IsCtext returns whether c can appear unescaped in a comment, including
// obs-ctext.
func IsCtext(c byte) bool {
	return c >= 33 && c <= 39 || c >= 42 && c <= 91 || c >= 93 && c <= 126 || IsObsNoWSCtl(c)
}

// IsDtext returns whether c can appear unescaped in a domain literal, including
// obs-dtext without its quoted-pair.
func IsDtext(c byte) bool {
	return c >= 33 && c <= 90 || c >= 94 && c <= 126 || IsObsNoWSCtl(c)
}
