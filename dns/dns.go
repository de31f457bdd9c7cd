// Package dns turns domain names, e.g. from the domain of an email address,
// into canonical form: lower case, with an ASCII (IDNA A-label) name, and a
// unicode name for internationalized domains.
package dns

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

var (
	errEmpty       = errors.New("empty domain name")
	errTrailingDot = errors.New("dns name has trailing dot")
	errUnderscore  = errors.New("domain name with underscore")
	errIDNA        = errors.New("idna")
)

// Domain is a domain name of one or more labels. Only compare parsed domains,
// never the strings they were parsed from: IDNA maps many spellings to the same
// name.
type Domain struct {
	// Lower case ASCII name, with A-labels (xn--...) for internationalized
	// labels. Used for comparisons and DNS.
	ASCII string

	// Name with U-labels. Empty for ASCII-only domains.
	Unicode string
}

// Name returns the unicode name if set, otherwise the ASCII name.
func (d Domain) Name() string {
	if d.Unicode != "" {
		return d.Unicode
	}
	return d.ASCII
}

// XName is like Name, but only returns the unicode name if utf8 is set.
func (d Domain) XName(utf8 bool) string {
	if utf8 {
		return d.Name()
	}
	return d.ASCII
}

// String returns the name for display, see LogString.
func (d Domain) String() string {
	return d.LogString()
}

// LogString returns the ASCII name, preceded by the unicode name and a slash
// for internationalized domains.
func (d Domain) LogString() string {
	if d.Unicode == "" {
		return d.ASCII
	}
	return d.Unicode + "/" + d.ASCII
}

// IsZero returns whether d is the empty Domain.
func (d Domain) IsZero() bool {
	return d == Domain{}
}

// ParseDomain parses a domain name with ASCII and/or unicode labels, returning
// it IDNA-canonicalized and in lower case.
func ParseDomain(s string) (Domain, error) {
	return parseDomain(s, false)
}

// ParseDomainLax is like ParseDomain, but also accepts ASCII-only names with
// underscores in labels, as seen in addresses in the wild. Such names are only
// lower-cased.
func ParseDomainLax(s string) (Domain, error) {
	return parseDomain(s, true)
}

func parseDomain(s string, lax bool) (Domain, error) {
	if s == "" {
		return Domain{}, errEmpty
	}
	if strings.HasSuffix(s, ".") {
		return Domain{}, errTrailingDot
	}
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		if lax && strings.Contains(s, "_") {
			return laxDomain(s)
		}
		return Domain{}, fmt.Errorf("%w: to ascii: %v", errIDNA, err)
	}
	unicode, err := idna.Lookup.ToUnicode(s)
	if err != nil {
		return Domain{}, fmt.Errorf("%w: to unicode: %v", errIDNA, err)
	}
	if ascii == unicode {
		unicode = ""
	}
	return Domain{ascii, unicode}, nil
}

// laxDomain accepts ASCII letters, digits, hyphens and underscores. Labels
// cannot be internationalized, neither as U-label nor as A-label.
func laxDomain(s string) (Domain, error) {
	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return Domain{}, fmt.Errorf("%w: empty label", errIDNA)
		}
		if strings.HasPrefix(strings.ToLower(label), "xn--") {
			return Domain{}, fmt.Errorf("%w: with idna label %q", errUnderscore, label)
		}
		for _, c := range label {
			if c > 0x7f {
				return Domain{}, fmt.Errorf("%w: with non-ascii label %q", errUnderscore, label)
			}
			if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
				continue
			}
			return Domain{}, fmt.Errorf("%w: invalid character %q", errIDNA, c)
		}
	}
	return Domain{ASCII: strings.ToLower(s)}, nil
}
