package smtp

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var ErrBadAddressLiteral = errors.New("invalid address literal")

// AddressLiteral returns an IPv4 or IPv6 address literal for use in an
// address.
func AddressLiteral(ip net.IP) string {
	if ip.To4() != nil {
		return "[" + ip.String() + "]"
	}
	return "[IPv6:" + ip.String() + "]"
}

// ParseAddressLiteral parses a domain-literal as an IP address: "[1.2.3.4]"
// for IPv4 and "[IPv6:...]" for IPv6, with case-insensitive tag. Errors wrap
// ErrBadAddressLiteral.
func ParseAddressLiteral(s string) (net.IP, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") || len(s) < 2 {
		return nil, fmt.Errorf("%w: missing brackets in %q", ErrBadAddressLiteral, s)
	}
	v := s[1 : len(s)-1]
	if len(v) >= 5 && strings.EqualFold(v[:5], "IPv6:") {
		ip := net.ParseIP(v[5:])
		if ip == nil || ip.To4() != nil && !strings.Contains(v[5:], ":") {
			return nil, fmt.Errorf("%w: bad ipv6 address %q", ErrBadAddressLiteral, v[5:])
		}
		return ip, nil
	}
	ip := net.ParseIP(v)
	if ip == nil || ip.To4() == nil || strings.Contains(v, ":") {
		return nil, fmt.Errorf("%w: bad ipv4 address %q", ErrBadAddressLiteral, v)
	}
	return ip, nil
}
