// Package hostutil checks that a decomposed URL host names something
// reachable: a dotted-quad IPv4 address or an RFC 1123 hostname, with an
// optional :port suffix.
package hostutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrBadHost = errors.New("bad host")
	ErrBadIP   = errors.New("bad IP")
	ErrBadPort = errors.New("bad port")
)

// ValidateHost validates host[:port]. Bracketed IPv6 literals are not
// supported and are reported as ErrBadHost.
func ValidateHost(raw string) error {
	host, port, hasPort, err := splitPort(raw)
	if err != nil {
		return err
	}

	if hasPort && !isPort(port) {
		return fmt.Errorf("%w: '%s'", ErrBadPort, port)
	}

	switch {
	case host == "":
		return fmt.Errorf("%w: empty host in '%s'", ErrBadHost, raw)
	case looksLikeIPv4(host):
		if !validIPv4(host) {
			return fmt.Errorf("%w: '%s'", ErrBadIP, host)
		}
	default:
		if !validHostname(host) {
			return fmt.Errorf("%w: '%s'", ErrBadHost, host)
		}
	}
	return nil
}

// splitPort cuts a single trailing ":port" off raw.
func splitPort(raw string) (host, port string, hasPort bool, err error) {
	switch strings.Count(raw, ":") {
	case 0:
		return raw, "", false, nil
	case 1:
		host, port, _ = strings.Cut(raw, ":")
		return host, port, true, nil
	default:
		return "", "", false, fmt.Errorf("%w: '%s'", ErrBadHost, raw)
	}
}

// isPort reports whether s is a decimal port number (0–65535) without
// sign or leading zeros.
func isPort(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	port, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return port <= 65535
}

// looksLikeIPv4 checks if raw is four dot-separated digit runs
func looksLikeIPv4(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

func validIPv4(raw string) bool {
	ip := net.ParseIP(raw)
	return ip != nil && ip.To4() != nil
}

// validHostname checks DNS label rules (RFC 1123)
func validHostname(raw string) bool {
	if len(raw) > 253 {
		return false
	}
	for _, label := range strings.Split(raw, ".") {
		if len(label) < 1 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '-') {
				return false
			}
		}
	}
	return true
}
