package rfc5322_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/mjl-/imf/rfc5322"
)

func ExampleParseAddress() {
	c := rfc5322.NewCursor([]byte("(comment) \"john smith\"@[192.168.\r\n 0.1]>"))
	a, n, err := rfc5322.ParseAddress(c)
	if err != nil {
		log.Fatalf("parse address: %v", err)
	}
	fmt.Printf("%s\n%s\n%d\n", a.LocalPart, a.Domain, n)
	// Output:
	// john smith
	// [192.168. 0.1]
	// 39
}

func ExampleParsePhrase() {
	var b strings.Builder
	c := rfc5322.NewCursor([]byte(`John (middle) "Q." Public <john@example.org>`))
	if _, err := rfc5322.ParsePhrase(c, &b); err != nil {
		log.Fatalf("parse phrase: %v", err)
	}
	fmt.Println(b.String())
	// Output:
	// John Q. Public
}

func ExampleSkipCFWS() {
	c := rfc5322.NewCursor([]byte("(a (nested) comment)\r\n value"))
	n, err := rfc5322.SkipCFWS(c)
	if err != nil {
		log.Fatalf("skip cfws: %v", err)
	}
	c.Advance(n)
	fmt.Println(string(c.Remaining()))
	// Output:
	// value
}
