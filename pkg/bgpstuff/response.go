package bgpstuff

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// apiResponse is the JSON envelope every endpoint returns:
// {"ID": string, "Response": {...}} with endpoint-specific fields inside
// Response.
type apiResponse struct {
	ID       string      `json:"ID"`
	Response wirePayload `json:"Response"`
}

type wirePayload struct {
	Exists   flexBool      `json:"Exists"`
	Route    string        `json:"Route"`
	Origin   string        `json:"Origin"`
	ASPath   []string      `json:"ASPath"`
	ASSet    []string      `json:"ASSet"`
	ROA      string        `json:"ROA"`
	ASName   string        `json:"ASName"`
	Totals   wireTotals    `json:"Totals"`
	Sourced  wireSourced   `json:"Sourced"`
	Invalids []wireInvalid `json:"Invalids"`
	ASNames  []wireASName  `json:"ASNames"`
	VRPs     []wireVRP     `json:"VRPs"`
}

type wireTotals struct {
	Ipv4 flexUint32 `json:"Ipv4"`
	Ipv6 flexUint32 `json:"Ipv6"`
}

type wireSourced struct {
	Prefixes []string `json:"Prefixes"`
}

type wireInvalid struct {
	ASN      flexUint32 `json:"ASN"`
	Prefixes []string   `json:"Prefixes"`
}

type wireASName struct {
	ASN    flexUint32 `json:"ASN"`
	ASName string     `json:"ASName"`
}

type wireVRP struct {
	Prefix string `json:"Prefix"`
	Max    int    `json:"Max"`
}

// flexBool decodes a boolean field that some service revisions emit as
// the literal string "true". Any other string, and an absent field,
// decode to false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*b = true
		return nil
	case "false", "null":
		*b = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode exists flag: %w", err)
	}
	*b = s == "true"
	return nil
}

// flexUint32 decodes a numeric field that some service revisions emit
// as a JSON string.
type flexUint32 uint32

func (u *flexUint32) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("parse AS number %q: %w", s, err)
	}
	*u = flexUint32(v)
	return nil
}

// parseASN converts a wire AS number string into a 32-bit ASN.
func parseASN(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse AS number %q: %w", s, err)
	}
	return uint32(v), nil
}

// parseASNs converts a wire AS path or AS set into ASNs, preserving order.
func parseASNs(values []string) ([]uint32, error) {
	if len(values) == 0 {
		return nil, nil
	}
	asns := make([]uint32, 0, len(values))
	for _, v := range values {
		asn, err := parseASN(v)
		if err != nil {
			return nil, err
		}
		asns = append(asns, asn)
	}
	return asns, nil
}

// parsePrefix converts a wire CIDR string into a netip.Prefix.
func parsePrefix(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("parse prefix %q: %w", s, err)
	}
	return p, nil
}

// parsePrefixes converts a wire prefix list, preserving order.
func parsePrefixes(values []string) ([]netip.Prefix, error) {
	if len(values) == 0 {
		return nil, nil
	}
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		p, err := parsePrefix(v)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, p)
	}
	return prefixes, nil
}

// responseSnippet truncates a response body for inclusion in error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
