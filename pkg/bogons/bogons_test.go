package bogons

import (
	"net/netip"
	"testing"
)

func TestIsPublicIP(t *testing.T) {
	cases := []struct {
		ip     string
		public bool
	}{
		{"8.8.8.8", true},
		{"1.1.1.1", true},
		{"50.114.112.1", true},
		{"0.1.2.3", false},
		{"10.0.0.1", false},
		{"100.64.0.1", false},
		{"127.0.0.1", false},
		{"169.254.1.1", false},
		{"172.16.5.5", false},
		{"172.32.0.1", true},
		{"192.0.2.1", false},
		{"192.88.99.1", false},
		{"192.168.1.1", false},
		{"198.18.0.1", false},
		{"198.51.100.1", false},
		{"203.0.113.1", false},
		{"224.0.0.1", false},
		{"240.0.0.1", false},
		{"255.255.255.255", false},
		{"2600::", true},
		{"2001:4860:4860::8888", true},
		{"::", false},
		{"::1", false},
		{"::ffff:8.8.8.8", false},
		{"64:ff9b::1", false},
		{"100::1", false},
		{"2001:2::1", false},
		{"2001:db8::1", false},
		{"fc00::1", false},
		{"fd12:3456::1", false},
		{"fe80::1", false},
		{"fec0::1", false},
		{"ff02::1", false},
	}

	for _, tc := range cases {
		addr := netip.MustParseAddr(tc.ip)
		if got := IsPublicIP(addr); got != tc.public {
			t.Errorf("IsPublicIP(%s) = %v, want %v", tc.ip, got, tc.public)
		}
	}

	if IsPublicIP(netip.Addr{}) {
		t.Errorf("IsPublicIP(zero addr) = true, want false")
	}
}

func TestValidPublicIP(t *testing.T) {
	if !ValidPublicIP("8.8.8.8") {
		t.Errorf("expected 8.8.8.8 to be public")
	}
	for _, s := range []string{"", "not-an-ip", "8.8.8", "10.0.0.1"} {
		if ValidPublicIP(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestValidPublicASN(t *testing.T) {
	valid := []uint32{1, 3356, 13335, 15169, 394977, 4199999999}
	for _, asn := range valid {
		if !ValidPublicASN(asn) {
			t.Errorf("expected AS%d to be valid", asn)
		}
	}

	invalid := []uint32{0, 64496, 64500, 64511, 64512, 65000, 65534, 65535, 65536, 65551, 4200000000, 4294967294, 4294967295}
	for _, asn := range invalid {
		if ValidPublicASN(asn) {
			t.Errorf("expected AS%d to be rejected", asn)
		}
	}
}
