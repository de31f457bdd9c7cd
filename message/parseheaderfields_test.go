package message

import (
	"errors"
	"strings"
	"testing"
)

func TestParseHeaderFields(t *testing.T) {
	check := func(header string, fields []string, exp []Field) {
		t.Helper()

		var buffields [][]byte
		for _, f := range fields {
			buffields = append(buffields, []byte(f))
		}
		l, err := ParseHeaderFields([]byte(strings.ReplaceAll(header, "\n", "\r\n")), buffields)
		tcheck(t, err, "parse header fields")
		if len(l) != len(exp) {
			t.Fatalf("got %d fields %q, expected %d", len(l), l, len(exp))
		}
		for i := range l {
			if string(l[i].Key) != string(exp[i].Key) || string(l[i].Value) != strings.ReplaceAll(string(exp[i].Value), "\n", "\r\n") {
				t.Fatalf("field %d: got %q: %q, expected %q: %q", i, l[i].Key, l[i].Value, exp[i].Key, exp[i].Value)
			}
		}
	}
	field := func(k, v string) Field {
		return Field{[]byte(k), []byte(v)}
	}

	check("", []string{"subject"}, nil)
	check("Subject: test\n", []string{"subject"}, []Field{field("Subject", " test")})
	check("References: <id@host>\nOther: ignored\nSubject: first\nSubject: test\n\tcontinuation\n", []string{"subject", "REFERENCES"},
		[]Field{field("References", " <id@host>"), field("Subject", " first"), field("Subject", " test\n\tcontinuation")})
	check(":\n", []string{"subject"}, nil)
	check("bad\nSubject: x\n", []string{"subject"}, []Field{field("Subject", " x")})
	check("subject: test\n continuation without end", []string{"subject"}, []Field{field("subject", " test\n continuation without end")})
	check("subject \t: test\n", []string{"subject"}, nil)
	check("Subject:\n", []string{"subject"}, []Field{field("Subject", "")})
	check("A: 1\nB:2\n", nil, []Field{field("A", " 1"), field("B", "2")})
	check("A: 1\n\nB: 2\n", nil, []Field{field("A", " 1")})
	check(" leading\nA: 1\n", nil, []Field{field("A", " 1")})
	check("Bad line\n continued\nA: 1\n", nil, []Field{field("A", " 1")})

	// Bare LF line endings are kept as is.
	l, err := ParseHeaderFields([]byte("A: 1\n 2\nB: 3\n"), nil)
	tcheck(t, err, "parse header fields")
	tcompare(t, len(l), 2)
	tcompare(t, string(l[0].Value), " 1\n 2")

	pedantic(t, true)
	for _, s := range []string{"bad\r\n", " leading\r\n", "subject \t: test\r\n"} {
		_, err := ParseHeaderFields([]byte(s), nil)
		if !errors.Is(err, ErrBadField) {
			t.Fatalf("header %q: got err %v, expected ErrBadField", s, err)
		}
	}
}

func TestFieldUnfolded(t *testing.T) {
	check := func(value, exp string) {
		t.Helper()
		tcompare(t, string(Field{Key: []byte("k"), Value: []byte(value)}.Unfolded()), exp)
	}

	check(" test", "test")
	check(" test\r\n\tcontinuation", "test\tcontinuation")
	check(" a\r\n b\n c ", "a b c")
	check("", "")
	check(" \r\n ", "")
}

func TestFieldAddressList(t *testing.T) {
	l, err := ParseHeaderFields([]byte("To: a@x.example,\r\n B <b@y.example>\r\n"), [][]byte{[]byte("to")})
	tcheck(t, err, "parse header fields")
	tcompare(t, len(l), 1)
	al, err := l[0].AddressList()
	tcheck(t, err, "address list")
	tcompare(t, al, []Address{{"", "a", "x.example"}, {"B", "b", "y.example"}})
}
