package dns

import (
	"net"
)

// IPDomain is the domain of an address: an IP address from a domain-literal, a
// domain name, or empty.
type IPDomain struct {
	IP     net.IP
	Domain Domain
}

// IsZero returns whether neither IP nor Domain is set.
func (d IPDomain) IsZero() bool {
	return d.IP == nil && d.Domain.IsZero()
}

func (d IPDomain) IsIP() bool {
	return len(d.IP) > 0
}

func (d IPDomain) IsDomain() bool {
	return !d.Domain.IsZero()
}

// String returns the IP as address literal, "[1.2.3.4]" or "[IPv6:::1]", or the
// domain with unicode name.
func (d IPDomain) String() string {
	return d.XString(true)
}

// XString is like String, but only returns a unicode domain name if utf8 is
// set.
func (d IPDomain) XString(utf8 bool) string {
	if !d.IsIP() {
		return d.Domain.XName(utf8)
	}
	if d.IP.To4() != nil {
		return "[" + d.IP.String() + "]"
	}
	return "[IPv6:" + d.IP.String() + "]"
}

// LogString returns the IP address literal, or domain with both names.
func (d IPDomain) LogString() string {
	if d.IsIP() {
		return d.XString(false)
	}
	return d.Domain.LogString()
}
