// Package bogons reports whether IP addresses and AS numbers are valid
// public internet resources. Reserved, private, and otherwise
// non-routable values are rejected before they reach the wire.
package bogons

import (
	"net/netip"

	"go4.org/netipx"
)

// bogonPrefixes holds every prefix excluded from the public routing table.
var bogonPrefixes = []string{
	// IPv4
	"0.0.0.0/8",       // "this network"
	"10.0.0.0/8",      // RFC 1918 private
	"100.64.0.0/10",   // RFC 6598 shared address space
	"127.0.0.0/8",     // loopback
	"169.254.0.0/16",  // link local
	"172.16.0.0/12",   // RFC 1918 private
	"192.0.0.0/24",    // IETF protocol assignments
	"192.0.2.0/24",    // TEST-NET-1
	"192.88.99.0/24",  // deprecated 6to4 relay
	"192.168.0.0/16",  // RFC 1918 private
	"198.18.0.0/15",   // benchmarking
	"198.51.100.0/24", // TEST-NET-2
	"203.0.113.0/24",  // TEST-NET-3
	"224.0.0.0/4",     // multicast
	"240.0.0.0/4",     // reserved, includes broadcast

	// IPv6
	"::/128",        // unspecified
	"::1/128",       // loopback
	"::ffff:0:0/96", // IPv4-mapped
	"64:ff9b::/96",  // NAT64 well-known
	"100::/64",      // discard only
	"2001::/23",     // IETF protocol assignments, includes ORCHID and benchmarking
	"2001:db8::/32", // documentation
	"fc00::/7",      // unique local
	"fe80::/10",     // link local
	"fec0::/10",     // deprecated site local
	"ff00::/8",      // multicast
}

// reservedASNs holds the inclusive AS number ranges never assigned to
// public networks.
var reservedASNs = [][2]uint32{
	{0, 0},                   // RFC 7607 reserved
	{64496, 64511},           // RFC 5398 documentation
	{64512, 65534},           // RFC 6996 private use
	{65535, 65535},           // RFC 7300 reserved
	{65536, 65551},           // RFC 5398 documentation
	{4200000000, 4294967294}, // RFC 6996 private use
	{4294967295, 4294967295}, // RFC 7300 reserved
}

var bogonSet = mustIPSet(bogonPrefixes)

// mustIPSet builds an IPSet from literal prefixes, panicking on a bad literal.
func mustIPSet(prefixes []string) *netipx.IPSet {
	var builder netipx.IPSetBuilder
	for _, p := range prefixes {
		builder.AddPrefix(netip.MustParsePrefix(p))
	}
	set, err := builder.IPSet()
	if err != nil {
		panic("bogons: build prefix set: " + err.Error())
	}
	return set
}

// IsPublicIP reports whether addr is a valid, publicly routable unicast address.
func IsPublicIP(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	return !bogonSet.Contains(addr)
}

// ValidPublicIP reports whether s parses as an IP address that is publicly routable.
func ValidPublicIP(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return IsPublicIP(addr)
}

// ValidPublicASN reports whether asn is a public AS number, excluding the
// reserved, private-use, and documentation ranges.
func ValidPublicASN(asn uint32) bool {
	for _, r := range reservedASNs {
		if asn >= r[0] && asn <= r[1] {
			return false
		}
	}
	return true
}
