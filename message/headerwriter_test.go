package message

import (
	"strings"
	"testing"
)

func TestHeaderWriter(t *testing.T) {
	var w HeaderWriter
	w.Add("", "Received:")
	w.Addf(" ", "from %s", "mail.example.org")
	w.Add(" ", "by", "mx.example.org")
	w.Newline()
	w.Add(" ", "with ESMTP")
	tcompare(t, w.String(), "Received: from mail.example.org by mx.example.org\r\n\twith ESMTP\r\n")

	var lw HeaderWriter
	lw.Add("", "Key:")
	for i := 0; i < 10; i++ {
		lw.Add(" ", strings.Repeat("x", 20))
	}
	for _, line := range strings.Split(strings.TrimSuffix(lw.String(), "\r\n"), "\r\n") {
		if len(line) > 78 {
			t.Fatalf("line too long: %q", line)
		}
	}
}

func TestFormatAddressList(t *testing.T) {
	a := Address{"", "abcdefghijklmnopqr", "example.org"}
	b := Address{"B", "b", "y.example"}

	tcompare(t, FormatAddressList("To", []Address{a, b}), "To: abcdefghijklmnopqr@example.org, B <b@y.example>\r\n")
	tcompare(t, FormatAddressList("Cc", []Address{a, a, a}), "Cc: abcdefghijklmnopqr@example.org, abcdefghijklmnopqr@example.org,\r\n\tabcdefghijklmnopqr@example.org\r\n")
	tcompare(t, FormatAddressList("Bcc", nil), "Bcc:\r\n")

	// Formatted lists parse to the same addresses.
	s := FormatAddressList("To", []Address{a, b, a, b, {"John Q. Public", "john", "example.org"}})
	l, err := ParseHeaderFields([]byte(s), nil)
	tcheck(t, err, "parse header fields")
	al, err := l[0].AddressList()
	tcheck(t, err, "address list")
	tcompare(t, al, []Address{a, b, a, b, {"John Q. Public", "john", "example.org"}})
}
