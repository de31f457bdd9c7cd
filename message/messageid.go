package message

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mjl-/imf/imfvar"
	"github.com/mjl-/imf/metrics"
	"github.com/mjl-/imf/rfc5322"
	"github.com/mjl-/imf/smtp"
)

var errBadMessageID = errors.New("not a message-id")

// MessageIDCanonical parses the Message-ID, returning a canonical value that is
// lower-cased, without <>, and no unneeded quoting. For matching in threading,
// with References/In-Reply-To. If the message-id is invalid (e.g. no <>), an error
// is returned. If the message-id could not be parsed as address (localpart "@"
// domain), the raw value and the bool return parameter true is returned. It is
// quite common that message-id's don't adhere to the localpart @ domain
// syntax.
func MessageIDCanonical(s string) (rs string, rraw bool, rerr error) {
	defer func() {
		metrics.ParseObserve("messageid", rerr)
	}()

	c := rfc5322.NewCursor([]byte(s))
	if n, err := rfc5322.SkipCFWS(c); err == nil {
		c.Advance(n)
	}
	if b, ok := c.Peek(); !ok || b != '<' {
		return "", false, fmt.Errorf("%w: missing <", errBadMessageID)
	}
	c.Advance(1)
	id, err := c.ReadUntil('>')
	if err != nil {
		return "", false, fmt.Errorf("%w: missing >", errBadMessageID)
	}
	// Seen in practice: Message-ID: <valid@valid.example> (added by postmaster@some.example)
	// Comments are fine. Other text after white space is accepted unless pedantic.
	rem := c.Remaining()
	n, err := rfc5322.SkipCFWS(c)
	if err != nil {
		n = 0
	}
	if len(bytes.TrimSpace(rem[n:])) > 0 && (imfvar.Pedantic || !rfc5322.IsWSP(rem[0])) {
		return "", false, fmt.Errorf("%w: data after >", errBadMessageID)
	}
	if len(id) == 0 {
		return "", false, fmt.Errorf("%w: empty message-id", errBadMessageID)
	}
	s, raw := canonicalID(string(id))
	return s, raw, nil
}

// canonicalID lower-cases id and removes unneeded quoting from its localpart.
// If id is not an address with a domain name, it is returned lower-cased and
// raw is true. The domain is kept as is, in ASCII or unicode form.
func canonicalID(id string) (string, bool) {
	id = strings.ToLower(id)
	// Common reasons for not being an address: underscore in hostname, ip
	// literal instead of domain, two @'s, no @ at all.
	a, n, err := rfc5322.ParseAddress(rfc5322.NewCursor([]byte(id)))
	if err != nil || n != len(id) {
		return id, true
	}
	p, err := smtp.PathFromID(a)
	if err != nil || p.IPDomain.IsIP() {
		return id, true
	}
	host := id[strings.LastIndexByte(id, '@')+1:]
	return p.Localpart.String() + "@" + host, false
}
