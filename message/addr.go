// Package message parses the header section of Internet Message Format
// messages, and the address and message-id values of header fields.
package message

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mjl-/imf/imfvar"
	"github.com/mjl-/imf/metrics"
	"github.com/mjl-/imf/mlog"
	"github.com/mjl-/imf/rfc5322"
	"github.com/mjl-/imf/smtp"
)

var xlog = mlog.New("message", nil)

var ErrBadAddress = errors.New("invalid address")

// Address is a mailbox from an address field, e.g. From or To.
type Address struct {
	Name string // Display name, words separated by single spaces. Empty if absent.
	User string // Localpart, packed as dot-atom or quoted-string.
	Host string // Domain in ASCII, or address literal like "[10.0.0.1]".
}

// String returns the address as mailbox, with angle brackets if there is a
// display name.
func (a Address) String() string {
	addr := a.User + "@" + a.Host
	if a.Name == "" {
		return addr
	}
	return displayName(a.Name) + " <" + addr + ">"
}

// displayName returns name as phrase: the words as is if they are atoms,
// otherwise as quoted-string.
func displayName(name string) string {
	atoms := true
	for _, w := range strings.Split(name, " ") {
		if w == "" {
			atoms = false
		}
		for i := 0; i < len(w); i++ {
			if !rfc5322.IsAtext(w[i]) {
				atoms = false
			}
		}
	}
	if atoms {
		return name
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(name) + `"`
}

// ParseMailbox parses s as a single mailbox: an addr-spec, or an optional
// display name followed by an addr-spec in angle brackets.
func ParseMailbox(s string) (ra Address, rerr error) {
	defer func() {
		metrics.ParseObserve("mailbox", rerr)
	}()

	p := newParser(s)
	a, err := p.mailbox()
	if err == nil && !p.empty() {
		err = p.errorf("leftover data after mailbox")
	}
	if err != nil {
		xlog.Debugx("parsing mailbox", err, slog.String("value", s))
		return Address{}, err
	}
	return a, nil
}

// ParseAddressList parses s as an address-list: comma-separated mailboxes and
// groups. The mailboxes of groups are included in the list, the group names are
// not. A group can be empty, e.g. "undisclosed-recipients:;".
func ParseAddressList(s string) (rl []Address, rerr error) {
	defer func() {
		metrics.ParseObserve("addresslist", rerr)
	}()

	l, err := newParser(s).addressList()
	if err != nil {
		xlog.Debugx("parsing address list", err, slog.String("value", s))
		return nil, err
	}
	return l, nil
}

type parser struct {
	c rfc5322.Cursor
}

func newParser(s string) *parser {
	return &parser{rfc5322.NewCursor([]byte(s))}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at position %d", ErrBadAddress, fmt.Sprintf(format, args...), p.c.Position())
}

func (p *parser) cfws() {
	if n, err := rfc5322.SkipCFWS(p.c); err == nil {
		p.c.Advance(n)
	}
}

func (p *parser) empty() bool {
	p.cfws()
	return p.c.Empty()
}

func (p *parser) peek(b byte) bool {
	c, ok := p.c.Peek()
	return ok && c == b
}

// take skips CFWS and consumes b if it is next.
func (p *parser) take(b byte) bool {
	p.cfws()
	if p.peek(b) {
		p.c.Advance(1)
		return true
	}
	return false
}

// phrase parses a display name followed by one of the bytes in next. The
// cursor is only moved if both are present.
func (p *parser) phrase(next string) (string, byte, bool) {
	var b strings.Builder
	n, err := rfc5322.ParsePhrase(p.c, &b)
	if err != nil {
		return "", 0, false
	}
	c := p.c
	c.Advance(n)
	ch, ok := c.Peek()
	if !ok || !strings.ContainsRune(next, rune(ch)) {
		return "", 0, false
	}
	c.Advance(1)
	p.c = c
	return b.String(), ch, true
}

func (p *parser) addressList() ([]Address, error) {
	var l []Address
	var elems int
	for !p.empty() {
		if p.take(',') {
			if imfvar.Pedantic {
				return nil, p.errorf("empty address list element")
			}
			continue
		}
		al, err := p.address()
		if err != nil {
			return nil, err
		}
		l = append(l, al...)
		elems++
		if p.empty() {
			break
		}
		if !p.take(',') {
			return nil, p.errorf("expected comma")
		}
		if p.empty() && imfvar.Pedantic {
			return nil, p.errorf("empty address list element")
		}
	}
	if elems == 0 {
		return nil, p.errorf("empty address list")
	}
	return l, nil
}

// address parses a mailbox or a group, returning the mailboxes.
func (p *parser) address() ([]Address, error) {
	start := p.c
	_, ch, ok := p.phrase(":<")
	if ok && ch == ':' {
		return p.group()
	}
	p.c = start
	a, err := p.mailbox()
	if err != nil {
		return nil, err
	}
	return []Address{a}, nil
}

// group parses the mailboxes of a group after its ":", and the ";".
func (p *parser) group() ([]Address, error) {
	var l []Address
	for {
		if p.take(';') {
			p.cfws()
			return l, nil
		}
		if p.take(',') {
			if imfvar.Pedantic {
				return nil, p.errorf("empty group list element")
			}
			continue
		}
		if p.empty() {
			return nil, p.errorf("missing semicolon at end of group")
		}
		a, err := p.mailbox()
		if err != nil {
			return nil, err
		}
		l = append(l, a)
		if !p.take(',') && !p.peek(';') {
			return nil, p.errorf("expected comma or semicolon in group")
		}
	}
}

func (p *parser) mailbox() (Address, error) {
	start := p.c
	if name, _, ok := p.phrase("<"); ok {
		return p.angleAddr(name)
	}
	p.c = start
	if p.take('<') {
		return p.angleAddr("")
	}
	p.c = start
	return p.addrSpec("")
}

// angleAddr parses the address after "<", and the ">". An obsolete route
// before the address is skipped.
func (p *parser) angleAddr(name string) (Address, error) {
	p.cfws()
	if p.peek('@') {
		if imfvar.Pedantic {
			return Address{}, p.errorf("obsolete route in address")
		}
		if err := p.route(); err != nil {
			return Address{}, err
		}
	}
	a, err := p.addrSpec(name)
	if err != nil {
		return Address{}, err
	}
	if !p.take('>') {
		return Address{}, p.errorf("missing closing angle bracket")
	}
	p.cfws()
	return a, nil
}

// route skips an obs-route: "@" domain *("," ["@" domain]) ":".
func (p *parser) route() error {
	for {
		if p.take(':') {
			return nil
		}
		if p.take(',') {
			continue
		}
		if !p.take('@') {
			return p.errorf("bad route in address")
		}
		n, err := rfc5322.SkipDomain(p.c)
		if err != nil {
			return fmt.Errorf("%w: route domain: %w", ErrBadAddress, err)
		}
		p.c.Advance(n)
	}
}

func (p *parser) addrSpec(name string) (Address, error) {
	a, n, err := rfc5322.ParseAddress(p.c)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrBadAddress, err)
	}
	p.c.Advance(n)
	path, err := smtp.PathFromAddress(a)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrBadAddress, err)
	}
	return Address{name, path.Localpart.String(), path.IPDomain.XString(false)}, nil
}
