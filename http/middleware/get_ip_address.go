package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/webbot"
)

// UnknownIPAddress stands in for the client address when no header or peer address names one.
const UnknownIPAddress = "0.0.0.0"

// proxyHeaders list the headers proxies record client addresses in, most trusted first.
var proxyHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic are IANA special-purpose ranges netip does not already call private.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stashes the client address of each request in its context under webbot.IpAddrKey,
// where dispatch.Request.IPAddress and LogRequest read it.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), webbot.IpAddrKey, ClientIP(r))
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// ClientIP finds the address of the client sending r.
//
// Proxy headers are read right to left, so the public address closest to our proxy wins.
// Without one, the peer address of the connection is used.
func ClientIP(r *http.Request) string {
	for _, name := range proxyHeaders {
		addrs := strings.Split(r.Header.Get(name), ",")
		for i := len(addrs) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addrs[i]))
			if err == nil && isPublic(addr) {
				return addr.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.String()
	}

	return UnknownIPAddress
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
