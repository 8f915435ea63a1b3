// Package endpoint derives the base address of the answering service from
// the host the process was started against.
package endpoint

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultHost = "localhost"
	ServicePort = 8000
	HostEnv     = "RAGDESK_HOST"
)

// Resolve composes host with the fixed service port. A blank host falls back
// to DefaultHost. The result has no trailing slash.
func Resolve(host string) *url.URL {
	clean := normalizeHost(host)
	return &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(clean, strconv.Itoa(ServicePort)),
	}
}

// HostFromEnv reads the host context of the current process.
func HostFromEnv() string {
	return normalizeHost(os.Getenv(HostEnv))
}

// normalizeHost reduces host to a bare name or address. A scheme, path or
// port given by the user is dropped; the service port is fixed.
func normalizeHost(host string) string {
	clean := strings.TrimSpace(host)
	if i := strings.Index(clean, "://"); i >= 0 {
		if u, err := url.Parse(clean); err == nil && u.Host != "" {
			clean = u.Host
		} else {
			clean = clean[i+3:]
		}
	}
	if i := strings.IndexAny(clean, "/?#"); i >= 0 {
		clean = clean[:i]
	}
	if h, _, err := net.SplitHostPort(clean); err == nil {
		clean = h
	}
	// accept "[::1]" as well as "::1"
	clean = strings.TrimSuffix(strings.TrimPrefix(clean, "["), "]")
	if clean == "" {
		return DefaultHost
	}
	return clean
}
