package security

import (
	"net"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// IPResolver works out the client address of a request. Forwarding
// headers are only believed when the direct peer is a trusted proxy.
type IPResolver struct {
	trustedProxies []*net.IPNet
}

// NewIPResolver trusts loopback and the private ranges.
func NewIPResolver() *IPResolver {
	r := &IPResolver{}
	for _, cidr := range []string{"127.0.0.0/8", "::1/128", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"} {
		_, network, _ := net.ParseCIDR(cidr)
		r.trustedProxies = append(r.trustedProxies, network)
	}
	return r
}

// AddTrustedProxy adds a trusted proxy network
func (res *IPResolver) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return errors.Wrapf(err, "invalid CIDR %s", cidr)
	}
	res.trustedProxies = append(res.trustedProxies, network)
	return nil
}

// ClientIP returns the address to attribute r to.
func (res *IPResolver) ClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsed := net.ParseIP(directIP)
	if parsed == nil || !res.trusted(parsed) {
		return directIP
	}

	if ip, ok := res.fromForwardedFor(r.Header.Values("X-Forwarded-For")); ok {
		return ip
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	return directIP
}

// fromForwardedFor walks the hops right to left, as appended by each
// proxy, and returns the first one that is not a trusted proxy. Entries
// left of it were written by the client and are ignored. A malformed hop
// ends the walk. When every hop is trusted the leftmost one is the client.
func (res *IPResolver) fromForwardedFor(headers []string) (string, bool) {
	var hops []string
	for _, h := range headers {
		hops = append(hops, strings.Split(h, ",")...)
	}
	last := ""
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		ip := net.ParseIP(hop)
		if ip == nil {
			break
		}
		if !res.trusted(ip) {
			return hop, true
		}
		last = hop
	}
	return last, last != ""
}

func (res *IPResolver) trusted(ip net.IP) bool {
	for _, network := range res.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
