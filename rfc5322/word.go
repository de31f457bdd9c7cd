package rfc5322

import (
	"io"
)

// Words and phrases, RFC 5322 sections 3.2.5 and 4.1.
//
//	word       = atom / quoted-string
//	phrase     = 1*word / obs-phrase
//	obs-phrase = word *(word / "." / CFWS)

func word(c Cursor, o *out) (int, *Error) {
	return first(c, o, atom, quotedString)
}

// wordText is a word without its surrounding CFWS.
func wordText(c Cursor, o *out) (int, *Error) {
	return first(c, o, atomText, quotedText)
}

// phrase writes the words of the phrase, with each CFWS between words replaced
// by a single space, and the dots of obs-phrase. CFWS before the first and after
// the last word is consumed but not written.
func phrase(c Cursor, o *out) (int, *Error) {
	m := o.mark()
	n := optCFWS(c)
	l, err := wordText(c.advanced(n), o)
	if err != nil {
		return 0, err
	}
	n += l
	for {
		cc := c.advanced(n)
		sp := optCFWS(cc)
		next := cc.advanced(sp)
		ch, ok := next.Peek()
		if !ok {
			n += sp
			break
		}
		if ch == '.' {
			if sp > 0 {
				o.writeByte(SP)
			}
			o.writeByte('.')
			n += sp + 1
			continue
		}
		if !IsAtext(ch) && ch != DQUOTE {
			n += sp
			break
		}
		wm := o.mark()
		if sp > 0 {
			o.writeByte(SP)
		}
		l, err := wordText(next, o)
		if err != nil {
			o.reset(wm)
			if !recoverable(err) {
				o.reset(m)
				return 0, err
			}
			n += sp
			break
		}
		n += sp + l
	}
	return n, nil
}

// SkipWord returns the length of the word at c, including surrounding CFWS.
func SkipWord(c Cursor) (int, error) {
	return skip(c, word)
}

// ParseWord parses the atom or quoted-string at c and writes its value to w.
func ParseWord(c Cursor, w io.Writer) (int, error) {
	return run(c, w, word)
}

// SkipPhrase returns the length of the phrase at c.
func SkipPhrase(c Cursor) (int, error) {
	return skip(c, phrase)
}

// ParsePhrase parses the phrase at c, e.g. a display-name, and writes its words
// to w separated by single spaces.
func ParsePhrase(c Cursor, w io.Writer) (int, error) {
	return run(c, w, phrase)
}
