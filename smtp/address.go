// Package smtp has typed email addresses as used in SMTP and message headers,
// parsed with the rfc5322 grammar.
package smtp

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mjl-/imf/dns"
	"github.com/mjl-/imf/imfvar"
	"github.com/mjl-/imf/metrics"
	"github.com/mjl-/imf/mlog"
	"github.com/mjl-/imf/rfc5322"
)

var xlog = mlog.New("smtp", nil)

var (
	ErrBadAddress   = errors.New("invalid email address")
	ErrBadLocalpart = errors.New("invalid localpart")

	errObsolete = errors.New("obsolete syntax not allowed in pedantic mode")
)

// Localpart is the decoded local part of an email address, before the "@":
// without CFWS, quotes and escaping backslashes. An empty Localpart can be
// valid.
type Localpart string

// String returns the localpart as dot-atom if possible, otherwise as
// quoted-string, for use in an address.
func (lp Localpart) String() string {
	if isDotAtom(string(lp)) {
		return string(lp)
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(lp); i++ {
		c := lp[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// isDotAtom returns whether s is dot-atom-text. Non-ASCII is allowed, as with
// internationalized addresses.
func isDotAtom(s string) bool {
	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return false
		}
		for i := 0; i < len(label); i++ {
			if c := label[i]; c <= 0x7f && !rfc5322.IsAtext(c) {
				return false
			}
		}
	}
	return true
}

// LogString returns the localpart as for an address, and if it has bytes that
// need escaping for display, a slash and a Go-quoted form.
func (lp Localpart) LogString() string {
	s := lp.String()
	qs := strconv.QuoteToASCII(s)
	if qs != `"`+s+`"` {
		s = "/" + qs
	}
	return s
}

// Address is a parsed email address with a domain name. Addresses with a
// domain-literal are a Path.
type Address struct {
	Localpart Localpart
	Domain    dns.Domain
}

// NewAddress returns an address.
func NewAddress(localpart Localpart, domain dns.Domain) Address {
	return Address{localpart, domain}
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Path returns the address as path, with the domain as IPDomain.
func (a Address) Path() Path {
	return Path{a.Localpart, dns.IPDomain{Domain: a.Domain}}
}

// Pack returns the address for use in a message or SMTP. The domain has
// unicode only if utf8 is set. A localpart with non-ASCII is returned as is.
func (a Address) Pack(utf8 bool) string {
	if a.IsZero() {
		return ""
	}
	return a.Localpart.String() + "@" + a.Domain.XName(utf8)
}

// String returns the address with unicode domain.
func (a Address) String() string {
	return a.Pack(true)
}

// LogString returns the address, and for unicode domains or localparts that
// need escaping, also the ASCII form after a slash.
func (a Address) LogString() string {
	return a.Path().LogString()
}

// Path is an address with either a domain name or an IP address from a
// domain-literal.
type Path struct {
	Localpart Localpart
	IPDomain  dns.IPDomain
}

func (p Path) IsZero() bool {
	return p.Localpart == "" && p.IPDomain.IsZero()
}

// String returns the path with ASCII-only domain.
func (p Path) String() string {
	return p.XString(false)
}

// XString is like String, but with a unicode domain if utf8 is set.
func (p Path) XString(utf8 bool) string {
	if p.IsZero() {
		return ""
	}
	return p.Localpart.String() + "@" + p.IPDomain.XString(utf8)
}

// LogString returns the path with unicode domain, and if the domain is
// internationalized or the localpart needs escaping, a slash and the ASCII-only
// form.
func (p Path) LogString() string {
	if p.IsZero() {
		return ""
	}
	s := p.XString(true)
	lp := p.Localpart.String()
	qlp := strconv.QuoteToASCII(lp)
	escaped := qlp != `"`+lp+`"`
	if p.IPDomain.Domain.Unicode != "" || escaped {
		if escaped {
			lp = qlp
		}
		s += "/" + lp + "@" + p.IPDomain.XString(false)
	}
	return s
}

// Equal returns whether the paths are the same address. Localparts are compared
// exactly, domains by their ASCII name.
func (p Path) Equal(o Path) bool {
	if p.Localpart != o.Localpart {
		return false
	}
	if p.IPDomain.IsIP() || o.IPDomain.IsIP() {
		return p.IPDomain.IP.Equal(o.IPDomain.IP)
	}
	return p.IPDomain.Domain.ASCII == o.IPDomain.Domain.ASCII
}

// ParseAddress parses s as an addr-spec with a domain name. All of s must be
// the address, CFWS around and inside it is allowed. Errors wrap
// ErrBadAddress.
func ParseAddress(s string) (Address, error) {
	p, err := ParsePath(s)
	if err != nil {
		return Address{}, err
	}
	if p.IPDomain.IsIP() {
		return Address{}, fmt.Errorf("%w: domain-literal %s instead of domain name", ErrBadAddress, p.IPDomain)
	}
	return Address{p.Localpart, p.IPDomain.Domain}, nil
}

// ParsePath is like ParseAddress, but also accepts a domain-literal with an IP
// address.
func ParsePath(s string) (rp Path, rerr error) {
	defer func() {
		metrics.ParseObserve("address", rerr)
	}()

	a, err := parseFull(s, rfc5322.ParseAddress)
	if err != nil {
		return Path{}, fmt.Errorf("%w: %w", ErrBadAddress, err)
	}
	return pathFromAddress(a, s, true)
}

// PathFromAddress converts an address parsed with the rfc5322 package, with
// the same checks as ParsePath.
func PathFromAddress(a rfc5322.Address) (Path, error) {
	return pathFromAddress(a, a.String(), true)
}

// PathFromID is like PathFromAddress, for the addr-spec form of a message-id.
// Obsolete syntax is not counted in the address metrics.
func PathFromID(a rfc5322.Address) (Path, error) {
	return pathFromAddress(a, a.String(), false)
}

func pathFromAddress(a rfc5322.Address, s string, count bool) (Path, error) {
	if err := checkObsolete(a.Obsolete, s, count); err != nil {
		return Path{}, fmt.Errorf("%w: %w", ErrBadAddress, err)
	}
	lp := Localpart(a.LocalPart)
	if err := checkLength(lp); err != nil {
		return Path{}, fmt.Errorf("%w: %w", ErrBadAddress, err)
	}
	var ipd dns.IPDomain
	if len(a.Domain) > 0 && a.Domain[0] == '[' {
		ip, err := ParseAddressLiteral(string(a.Domain))
		if err != nil {
			return Path{}, fmt.Errorf("%w: %w", ErrBadAddress, err)
		}
		ipd.IP = ip
	} else {
		parse := dns.ParseDomainLax
		if imfvar.Pedantic {
			parse = dns.ParseDomain
		}
		d, err := parse(string(a.Domain))
		if err != nil {
			return Path{}, fmt.Errorf("%w: domain: %w", ErrBadAddress, err)
		}
		ipd.Domain = d
	}
	return Path{lp, ipd}, nil
}

// ParseLocalpart parses s as a local-part, all of s must be the local-part.
// Errors wrap ErrBadLocalpart.
func ParseLocalpart(s string) (rlp Localpart, rerr error) {
	defer func() {
		metrics.ParseObserve("localpart", rerr)
	}()

	type result struct {
		lp       []byte
		obsolete bool
	}
	r, err := parseFull(s, func(c rfc5322.Cursor) (result, int, error) {
		var b strings.Builder
		n, err := rfc5322.ParseLocalPart(c, &b)
		if err != nil {
			return result{}, 0, err
		}
		obsolete := false
		if n < len(c.Remaining()) {
			// A strict local-part that stops early may continue as obs-local-part.
			var ob strings.Builder
			if l, err := rfc5322.ParseObsLocalPart(c, &ob); err == nil && l > n {
				b.Reset()
				b.WriteString(ob.String())
				n = l
				obsolete = true
			}
		}
		return result{[]byte(b.String()), obsolete}, n, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadLocalpart, err)
	}
	if err := checkObsolete(r.obsolete, s, true); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadLocalpart, err)
	}
	lp := Localpart(r.lp)
	if err := checkLength(lp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadLocalpart, err)
	}
	return lp, nil
}

// parseFull runs parse on s and requires all of s to be consumed.
func parseFull[T any](s string, parse func(c rfc5322.Cursor) (T, int, error)) (T, error) {
	var zero T
	buf := []byte(s)
	v, n, err := parse(rfc5322.NewCursor(buf))
	if err != nil {
		return zero, err
	}
	if n != len(buf) {
		return zero, fmt.Errorf("leftover data %q at position %d", buf[n:], n)
	}
	return v, nil
}

func checkObsolete(obsolete bool, s string, count bool) error {
	if !obsolete {
		return nil
	}
	if count {
		metrics.ObsoleteInc(imfvar.Pedantic)
	}
	if imfvar.Pedantic {
		return errObsolete
	}
	xlog.Debug("accepting obsolete address syntax", slog.String("input", s))
	return nil
}

func checkLength(lp Localpart) error {
	// Generated addresses, e.g. for bounces, can have long localparts.
	limit := 128
	if imfvar.Pedantic {
		limit = 64
	}
	if len(lp) > limit {
		return fmt.Errorf("localpart longer than %d octets", limit)
	}
	return nil
}
