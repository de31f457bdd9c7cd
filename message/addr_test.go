package message

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mjl-/imf/imfvar"
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
		t.Fatalf("got %v, expected %v", got, exp)
	}
}

func pedantic(t *testing.T, p bool) {
	t.Helper()
	prev := imfvar.Pedantic
	imfvar.Pedantic = p
	t.Cleanup(func() { imfvar.Pedantic = prev })
}

func TestParseMailbox(t *testing.T) {
	good := func(s string, exp Address) {
		t.Helper()
		a, err := ParseMailbox(s)
		tcheck(t, err, "parse mailbox")
		tcompare(t, a, exp)
	}
	bad := func(s string) {
		t.Helper()
		_, err := ParseMailbox(s)
		if err == nil || !errors.Is(err, ErrBadAddress) {
			t.Fatalf("mailbox %q: got err %v, expected ErrBadAddress", s, err)
		}
	}

	good("john@example.org", Address{"", "john", "example.org"})
	good(" john@example.org (comment) ", Address{"", "john", "example.org"})
	good(`"John Smith" <john@example.org>`, Address{"John Smith", "john", "example.org"})
	good("John (middle) Smith <john@example.org>", Address{"John Smith", "john", "example.org"})
	good("John Q. Public <john@example.org>", Address{"John Q. Public", "john", "example.org"})
	good("<john@example.org>", Address{"", "john", "example.org"})
	good(`<"john smith"@example.org>`, Address{"", `"john smith"`, "example.org"})
	good(`"john"@example.org`, Address{"", "john", "example.org"})
	good("john@[10.0.0.1]", Address{"", "john", "[10.0.0.1]"})
	good("John\r\n Smith <john@example.org>", Address{"John Smith", "john", "example.org"})
	good("John <@route.example,@other.example:john@example.org>", Address{"John", "john", "example.org"})
	good("john . smith@example.org", Address{"", "john.smith", "example.org"})

	bad("")
	bad("john")
	bad("john@")
	bad("John <john@example.org")
	bad("john@example.org extra")
	bad("a@x.example, b@y.example")
	bad("Group: a@x.example;")
	bad("john@bad..example")

	pedantic(t, true)
	bad("John <@route.example:john@example.org>")
	bad("john . smith@example.org")
	good("John <john@example.org>", Address{"John", "john", "example.org"})
}

func TestParseAddressList(t *testing.T) {
	good := func(s string, exp []Address) {
		t.Helper()
		l, err := ParseAddressList(s)
		tcheck(t, err, "parse address list")
		tcompare(t, l, exp)
	}
	bad := func(s string) {
		t.Helper()
		_, err := ParseAddressList(s)
		if err == nil || !errors.Is(err, ErrBadAddress) {
			t.Fatalf("address list %q: got err %v, expected ErrBadAddress", s, err)
		}
	}

	a := Address{"", "a", "x.example"}
	b := Address{"B", "b", "y.example"}
	c := Address{"", "c", "z.example"}

	good("a@x.example", []Address{a})
	good("a@x.example, B <b@y.example>", []Address{a, b})
	good("a@x.example,B <b@y.example> , c@z.example", []Address{a, b, c})
	good("undisclosed-recipients:;", nil)
	good("Friends: a@x.example, B <b@y.example>;, c@z.example", []Address{a, b, c})
	good("Friends (comment): a@x.example;", []Address{a})
	good("a@x.example,, c@z.example", []Address{a, c})
	good("Friends: a@x.example,, c@z.example;", []Address{a, c})
	good("a@x.example,\r\n\tc@z.example", []Address{a, c})

	bad("")
	bad(" (comment) ")
	bad(",")
	bad("a@x.example c@z.example")
	bad("Friends: a@x.example")
	bad("Friends: a@x.example c@z.example;")
	bad("a@x.example, bogus")

	pedantic(t, true)
	bad("a@x.example,, c@z.example")
	bad("a@x.example,")
	bad("Friends: a@x.example,, c@z.example;")
	good("a@x.example, c@z.example", []Address{a, c})
}

func TestAddressString(t *testing.T) {
	check := func(a Address, exp string) {
		t.Helper()
		tcompare(t, a.String(), exp)
	}

	check(Address{"", "john", "example.org"}, "john@example.org")
	check(Address{"John Smith", "john", "example.org"}, "John Smith <john@example.org>")
	check(Address{"John Q. Public", "john", "example.org"}, `"John Q. Public" <john@example.org>`)
	check(Address{`a "b" \c`, "john", "example.org"}, `"a \"b\" \\c" <john@example.org>`)
	check(Address{"", `"john smith"`, "[10.0.0.1]"}, `"john smith"@[10.0.0.1]`)

	// Round trip.
	for _, s := range []string{"john@example.org", "John Smith <john@example.org>", `"John Q. Public" <john@example.org>`} {
		a, err := ParseMailbox(s)
		tcheck(t, err, "parse mailbox")
		tcompare(t, a.String(), s)
	}
}
