package dns

import (
	"errors"
	"net"
	"testing"
)

func TestParseDomain(t *testing.T) {
	test := func(lax bool, s string, exp Domain, expErr error) {
		t.Helper()
		parse := ParseDomain
		if lax {
			parse = ParseDomainLax
		}
		dom, err := parse(s)
		if (err == nil) != (expErr == nil) || expErr != nil && !errors.Is(err, expErr) {
			t.Fatalf("parse domain %q: err %v, expected %v", s, err, expErr)
		}
		if expErr == nil && dom != exp {
			t.Fatalf("parse domain %q: got %#v, expected %#v", s, dom, exp)
		}
	}

	test(false, "example.org", Domain{"example.org", ""}, nil)
	test(false, "EXAMPLE.Org", Domain{"example.org", ""}, nil)
	test(false, "TEST☺.EXAMPLE", Domain{"xn--test-3o3b.example", "test☺.example"}, nil)
	test(false, "xn--test-3o3b.example", Domain{"xn--test-3o3b.example", "test☺.example"}, nil)
	test(false, "example.org.", Domain{}, errTrailingDot)
	test(false, "", Domain{}, errEmpty)
	test(true, "", Domain{}, errEmpty)

	test(false, "_underscore.example.org", Domain{}, errIDNA)
	test(true, "_underscore.Example.ORG", Domain{ASCII: "_underscore.example.org"}, nil)
	test(true, "_underscore.☺.example", Domain{}, errUnderscore)
	test(true, "_underscore.xn--test-3o3b.example", Domain{}, errUnderscore)
	test(true, "_under score.example", Domain{}, errIDNA)
	test(true, "_underscore..example", Domain{}, errIDNA)
}

func TestDomainStrings(t *testing.T) {
	d := Domain{"xn--74h.example", "☺.example"}
	if d.Name() != "☺.example" || d.XName(false) != "xn--74h.example" || d.LogString() != "☺.example/xn--74h.example" {
		t.Fatalf("bad names for %#v", d)
	}
	if !(Domain{}).IsZero() || d.IsZero() {
		t.Fatalf("bad IsZero")
	}

	test := func(d IPDomain, exp string) {
		t.Helper()
		if s := d.String(); s != exp {
			t.Fatalf("got %q, expected %q", s, exp)
		}
	}
	test(IPDomain{IP: net.ParseIP("192.168.0.1")}, "[192.168.0.1]")
	test(IPDomain{IP: net.ParseIP("::1")}, "[IPv6:::1]")
	test(IPDomain{Domain: d}, "☺.example")
	if (IPDomain{Domain: d}).XString(false) != "xn--74h.example" {
		t.Fatalf("bad ascii name")
	}
	if !(IPDomain{}).IsZero() {
		t.Fatalf("empty ipdomain not zero")
	}
}
