package bgpstuff

import (
	"net/netip"
	"strconv"
	"strings"
)

// Route is the rib entry covering a queried IP address. Exists is false
// when the collector has no route for the address; Prefix is the zero
// value in that case.
type Route struct {
	Prefix netip.Prefix
	Exists bool
}

// Origin is the origin AS of the route covering a queried IP address.
type Origin struct {
	ASN    uint32
	Exists bool
}

// ASPath is the AS_PATH towards a queried IP address. Set holds the
// trailing AS_SET when the path was aggregated; it is nil otherwise.
type ASPath struct {
	Path   []uint32
	Set    []uint32
	Exists bool
}

// FullPath renders the path the way a looking glass prints it:
// "1 2 3", with any AS set appended in braces as "1 { 1 2 }".
func (p ASPath) FullPath() string {
	var b strings.Builder
	for i, asn := range p.Path {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(asn), 10))
	}
	if len(p.Set) > 0 {
		b.WriteString(" { ")
		for i, asn := range p.Set {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatUint(uint64(asn), 10))
		}
		b.WriteString(" }")
	}
	return b.String()
}

// ROAStatus classifies a route against its Route Origin Authorization.
type ROAStatus string

const (
	ROAValid   ROAStatus = "VALID"
	ROAInvalid ROAStatus = "INVALID"
	ROAUnknown ROAStatus = "UNKNOWN"
)

// ROA is the ROA validity of the route covering a queried IP address.
type ROA struct {
	Status ROAStatus
	Exists bool
}

// ASName is the registered name of a queried AS number.
type ASName struct {
	Name   string
	Exists bool
}

// Sourced lists the prefixes originated by a queried AS number.
type Sourced struct {
	Prefixes []netip.Prefix
	Exists   bool
}

// Totals is the number of IPv4 and IPv6 prefixes in the collector's table.
type Totals struct {
	IPv4 uint32
	IPv6 uint32
}

// Invalids maps an origin ASN to the ROA-invalid prefixes it announces.
type Invalids map[uint32][]netip.Prefix

// ForASN returns the invalid prefixes originated by asn, or nil when the
// ASN announces none.
func (i Invalids) ForASN(asn uint32) []netip.Prefix {
	return i[asn]
}

// ASNames maps an ASN to its registered name.
type ASNames map[uint32]string

// VRPs holds the Validated ROA Payloads covering a queried AS number,
// keyed by prefix with the authorized maximum length as value.
type VRPs struct {
	Prefixes map[netip.Prefix]int
	Exists   bool
}
