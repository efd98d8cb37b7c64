package app

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bgpstuff/bgpstuff-go/internal/config"
	"github.com/bgpstuff/bgpstuff-go/pkg/bgpstuff"
	"github.com/bgpstuff/bgpstuff-go/pkg/httpclient"
)

type stubHTTPClient struct {
	body   string
	status int
}

type stubResponse struct {
	body   []byte
	status int
}

func (r stubResponse) Body() []byte    { return r.body }
func (r stubResponse) StatusCode() int { return r.status }

func (s stubHTTPClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return stubResponse{body: []byte(s.body), status: status}, nil
}

func (s stubHTTPClient) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		BGPStuffURL:    "https://test.bgpstuff.net",
		RequestTimeout: time.Second,
		RateLimit:      30,
		RateWindow:     time.Minute,
	}
}

func newTestApp(t *testing.T, body string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := New(testConfig(), nil, &out, bgpstuff.WithHTTPClient(stubHTTPClient{body: body}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return a, &out
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestRouteRendering(t *testing.T) {
	a, out := newTestApp(t, `{"Response":{"Exists":true,"Route":"8.8.8.0/24"}}`)
	if err := a.Route(context.Background(), "8.8.8.8"); err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if got := out.String(); got != "The route for 8.8.8.8 is 8.8.8.0/24\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRouteRenderingNoResult(t *testing.T) {
	a, out := newTestApp(t, `{"Response":{"Exists":false}}`)
	if err := a.Route(context.Background(), "8.8.8.8"); err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if got := out.String(); got != "route does not exist for 8.8.8.8\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestASPathRendering(t *testing.T) {
	a, out := newTestApp(t, `{"Response":{"Exists":true,"ASPath":["3356","15169"]}}`)
	if err := a.ASPath(context.Background(), "8.8.8.8"); err != nil {
		t.Fatalf("ASPath returned error: %v", err)
	}
	if got := out.String(); got != "The aspath for 8.8.8.8 is 3356 15169\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestTotalsRendering(t *testing.T) {
	a, out := newTestApp(t, `{"Response":{"Totals":{"Ipv4":913345,"Ipv6":196538}}}`)
	if err := a.Totals(context.Background()); err != nil {
		t.Fatalf("Totals returned error: %v", err)
	}
	if got := out.String(); got != "There are 913345 IPv4 prefixes and 196538 IPv6 prefixes in the table.\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestInvalidsRenderingForOrigin(t *testing.T) {
	body := `{"Response":{"Invalids":[{"ASN":"13335","Prefixes":["1.2.3.0/24","4.5.6.0/24"]}]}}`
	a, out := newTestApp(t, body)
	if err := a.Invalids(context.Background(), 13335); err != nil {
		t.Fatalf("Invalids returned error: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "AS13335 is originating 2 ROA invalid prefixes\n") {
		t.Fatalf("unexpected output: %q", got)
	}
	if !strings.Contains(got, "1.2.3.0/24") || !strings.Contains(got, "4.5.6.0/24") {
		t.Fatalf("expected prefixes in output: %q", got)
	}
}

func TestQueryErrorsPropagate(t *testing.T) {
	a, _ := newTestApp(t, `{"Response":{}}`)
	if err := a.Route(context.Background(), "10.0.0.1"); err == nil {
		t.Fatalf("expected invalid input error to propagate")
	}
}

func TestParseASN(t *testing.T) {
	asn, err := ParseASN("15169")
	if err != nil || asn != 15169 {
		t.Fatalf("ParseASN(15169) = %d, %v", asn, err)
	}
	for _, arg := range []string{"", "abc", "-1", "4294967296"} {
		if _, err := ParseASN(arg); err == nil {
			t.Fatalf("expected error for %q", arg)
		}
	}
}
