package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mjl-/imf/config"
	"github.com/mjl-/imf/mlog"
	"github.com/mjl-/imf/smtp"
)

func tcheck(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %s", msg, err)
	}
}

func tcompare(t *testing.T, got, exp any) {
	t.Helper()
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("got:\n%q\nexpected:\n%q", got, exp)
	}
}

// Check that all commands have usage information, and don't panic while
// gathering it.
func TestUsage(t *testing.T) {
	for _, c := range cmds {
		c.gather()
		if c.help == "" {
			t.Fatalf("command %q without help", strings.Join(c.words, " "))
		}
		if !strings.HasPrefix(c.makeUsage(), "usage: imf "+strings.Join(c.words, " ")) {
			t.Fatalf("bad usage for %q: %q", strings.Join(c.words, " "), c.makeUsage())
		}
	}
}

func TestWriteHeaders(t *testing.T) {
	header := strings.Join([]string{
		"From: \"Doe, Jane\" <jane@Example.org>",
		"To: a@x.example,",
		"  B (comment) <b@y.example>",
		"Cc: bogus",
		"Subject: a folded",
		"\tsubject",
		"Date: 21 Nov 97 09:55:06 -0600",
		"Message-ID: <\"Msg.1\"@Host.Example>",
		"References: <a@x.example>",
		" <b@x.example>",
		"",
	}, "\r\n")

	log := mlog.New("test", nil)
	check := func(conf config.Config, fields []string, exp string) {
		t.Helper()
		var buffields [][]byte
		for _, f := range fields {
			buffields = append(buffields, []byte(f))
		}
		var b bytes.Buffer
		err := writeHeaders(&b, log, conf, []byte(header), buffields)
		tcheck(t, err, "write headers")
		tcompare(t, b.String(), exp)
	}

	check(config.Config{}, nil, strings.Join([]string{
		`From: "Doe, Jane" <jane@example.org>`,
		"To: a@x.example, B <b@y.example>",
		"Cc: bogus",
		"Subject: a folded\tsubject",
		"Date: Fri, 21 Nov 1997 09:55:06 -0600",
		"Message-ID: <msg.1@host.example>",
		"References: <a@x.example> <b@x.example>",
		"",
	}, "\r\n"))

	check(config.Config{}, []string{"subject", "to"}, "To: a@x.example, B <b@y.example>\r\nSubject: a folded\tsubject\r\n")

	// Only configured fields are parsed as address list.
	conf := config.Config{Static: config.Static{AddressFields: []string{"Cc"}}}
	check(conf, []string{"to"}, "To: a@x.example,  B (comment) <b@y.example>\r\n")
}

func TestWriteMetrics(t *testing.T) {
	_, err := smtp.ParseAddress("user@example.org")
	tcheck(t, err, "parse address")

	var b bytes.Buffer
	err = writeMetrics(&b)
	tcheck(t, err, "write metrics")
	s := b.String()
	if !strings.Contains(s, `imf_parse_total{production="address",result="ok"}`) {
		t.Fatalf("missing parse metric in %q", s)
	}
	if strings.Contains(s, "go_goroutines") {
		t.Fatalf("runtime metrics not filtered: %q", s)
	}
}
