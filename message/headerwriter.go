package message

import (
	"fmt"
	"strings"
)

// HeaderWriter helps create header fields, folding to the next line when a
// line would become longer than 78 characters.
type HeaderWriter struct {
	b        strings.Builder
	lineLen  int
	nonfirst bool
}

// Addf formats the string and calls Add.
func (w *HeaderWriter) Addf(separator string, format string, args ...any) {
	w.Add(separator, fmt.Sprintf(format, args...))
}

// Add adds texts, each separated by separator. Individual elements in text are
// not folded. The separator is dropped when folding.
func (w *HeaderWriter) Add(separator string, texts ...string) {
	for _, text := range texts {
		if w.nonfirst && w.lineLen > 1 && w.lineLen+len(separator)+len(text) > 78 {
			w.b.WriteString(strings.TrimRight(separator, " "))
			w.b.WriteString("\r\n\t")
			w.lineLen = 1
		} else if w.nonfirst {
			w.b.WriteString(separator)
			w.lineLen += len(separator)
		}
		w.b.WriteString(text)
		w.lineLen += len(text)
		w.nonfirst = true
	}
}

// Newline starts a new line. The next text is added without separator.
func (w *HeaderWriter) Newline() {
	w.b.WriteString("\r\n\t")
	w.lineLen = 1
	w.nonfirst = false
}

// String returns the header in string form, ending with \r\n.
func (w *HeaderWriter) String() string {
	return w.b.String() + "\r\n"
}

// FormatAddressList returns a header field with key and the addresses as
// comma-separated mailboxes, folded where needed.
func FormatAddressList(key string, addrs []Address) string {
	var w HeaderWriter
	w.Add("", key+":")
	for i, a := range addrs {
		sep := " "
		if i > 0 {
			sep = ", "
		}
		w.Add(sep, a.String())
	}
	return w.String()
}
