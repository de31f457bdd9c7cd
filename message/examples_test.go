package message_test

import (
	"bufio"
	"fmt"
	"log"
	"strings"

	"github.com/mjl-/imf/message"
)

func ExampleParseAddressList() {
	l, err := message.ParseAddressList(`"Smith, John" <john@example.org>, Friends: mjl@x.example, (none) jane@y.example;`)
	if err != nil {
		log.Fatalf("parse address list: %v", err)
	}
	for _, a := range l {
		fmt.Printf("%q %s %s\n", a.Name, a.User, a.Host)
	}
	// Output:
	// "Smith, John" john example.org
	// "" mjl x.example
	// "" jane y.example
}

func ExampleParseHeaderFields() {
	msg := "From: mjl@x.example\r\nSubject: a long\r\n subject\r\nTo: jane@y.example\r\n\r\nbody\r\n"
	header, err := message.ReadHeaders(bufio.NewReader(strings.NewReader(msg)))
	if err != nil {
		log.Fatalf("read headers: %v", err)
	}
	fields, err := message.ParseHeaderFields(header, [][]byte{[]byte("subject")})
	if err != nil {
		log.Fatalf("parse header fields: %v", err)
	}
	for _, f := range fields {
		fmt.Printf("%s: %s\n", f.Key, f.Unfolded())
	}
	// Output:
	// Subject: a long subject
}

func ExampleMessageIDCanonical() {
	id, raw, err := message.MessageIDCanonical("<\"Message.ID\"@Host.Example>")
	if err != nil {
		log.Fatalf("message-id: %v", err)
	}
	fmt.Println(id, raw)
	// Output:
	// message.id@host.example false
}
