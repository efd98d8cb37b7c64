package bgpstuff

import (
	"encoding/json"
	"testing"
)

func TestFlexBoolDecoding(t *testing.T) {
	cases := []struct {
		name string
		json string
		want bool
	}{
		{"native true", `{"Exists":true}`, true},
		{"native false", `{"Exists":false}`, false},
		{"null", `{"Exists":null}`, false},
		{"absent", `{}`, false},
		{"string true", `{"Exists":"true"}`, true},
		{"string false", `{"Exists":"false"}`, false},
		{"other string", `{"Exists":"1"}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload wirePayload
			if err := json.Unmarshal([]byte(tc.json), &payload); err != nil {
				t.Fatalf("unmarshal returned error: %v", err)
			}
			if bool(payload.Exists) != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, payload.Exists)
			}
		})
	}
}

func TestFlexUint32Decoding(t *testing.T) {
	var totals wireTotals
	if err := json.Unmarshal([]byte(`{"Ipv4":913345,"Ipv6":"196538"}`), &totals); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if totals.Ipv4 != 913345 || totals.Ipv6 != 196538 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	if err := json.Unmarshal([]byte(`{"Ipv4":"many"}`), &totals); err == nil {
		t.Fatalf("expected error for non-numeric value")
	}
}

func TestParsePrefixes(t *testing.T) {
	prefixes, err := parsePrefixes([]string{"8.8.8.0/24", "2600::/48"})
	if err != nil {
		t.Fatalf("parsePrefixes returned error: %v", err)
	}
	if len(prefixes) != 2 {
		t.Fatalf("expected 2 prefixes, got %d", len(prefixes))
	}

	if _, err := parsePrefixes([]string{"8.8.8.0/24", "bogus"}); err == nil {
		t.Fatalf("expected error for malformed prefix")
	}
}

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet(nil); got != "<empty>" {
		t.Fatalf("expected <empty>, got %q", got)
	}
	long := make([]byte, 1024)
	for i := range long {
		long[i] = 'a'
	}
	if got := responseSnippet(long); len(got) != 512+len("...") {
		t.Fatalf("expected truncated snippet, got %d bytes", len(got))
	}
}
