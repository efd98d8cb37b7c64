package bgpstuff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bgpstuff/bgpstuff-go/pkg/bogons"
	"github.com/bgpstuff/bgpstuff-go/pkg/httpclient"
)

// Version is reported to the service in the User-Agent header.
const Version = "1.0.0"

const (
	defaultBaseURL    = "https://bgpstuff.net"
	defaultTimeout    = 15 * time.Second
	defaultRateLimit  = 30
	defaultRateWindow = time.Minute
)

// Client queries the bgpstuff.net REST API. It rate limits its own
// requests and is safe for concurrent use; reuse one Client per process
// so the limiter covers all calls.
type Client struct {
	baseURL string
	http    httpclient.Client
	headers map[string]string
	limiter *rate.Limiter
	log     Logger

	mu         sync.Mutex
	lastStatus int
	lastID     string
	lastExists bool
}

type options struct {
	baseURL string
	timeout time.Duration
	http    httpclient.Client
	limit   int
	window  time.Duration
	log     Logger
}

// Option configures a Client during construction.
type Option func(*options)

// WithBaseURL points the client at a different bgpstuff instance, such
// as a test deployment.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithHTTPClient injects the transport; callers and tests can supply
// their own httpclient.Client implementation.
func WithHTTPClient(c httpclient.Client) Option { return func(o *options) { o.http = c } }

// WithTimeout sets the per-request timeout of the default transport.
// It has no effect when a transport is injected with WithHTTPClient.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithRateLimit overrides the default budget of 30 requests per rolling
// 60 second window.
func WithRateLimit(n int, window time.Duration) Option {
	return func(o *options) {
		o.limit = n
		o.window = window
	}
}

// WithLogger attaches a structured logger; without one the client is silent.
func WithLogger(log Logger) Option { return func(o *options) { o.log = log } }

// New builds a Client for the production bgpstuff.net endpoint unless
// overridden by options.
func New(opts ...Option) (*Client, error) {
	o := options{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
		limit:   defaultRateLimit,
		window:  defaultRateWindow,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := strings.TrimRight(strings.TrimSpace(o.baseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", o.baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", o.baseURL)
	}
	if o.limit <= 0 || o.window <= 0 {
		return nil, fmt.Errorf("rate limit %d per %v is not positive", o.limit, o.window)
	}

	transport := o.http
	if transport == nil {
		transport = httpclient.NewRestyClient(o.timeout)
	}

	return &Client{
		baseURL: base,
		http:    transport,
		headers: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   "bgpstuff-go/" + Version,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(o.limit)/o.window.Seconds()), o.limit),
		log:     ensureLogger(o.log),
	}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	if c == nil || c.http == nil {
		return nil
	}
	return c.http.Close()
}

// LastStatus returns the HTTP status of the most recently completed request.
func (c *Client) LastStatus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatus
}

// LastRequestID returns the service-assigned ID of the most recently
// completed request.
func (c *Client) LastRequestID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID
}

// LastExists reports whether the most recently completed request found a
// result. With interleaved concurrent queries "last" means last
// completed, not last issued.
func (c *Client) LastExists() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastExists
}

func (c *Client) storeLast(status int, id string, exists bool) {
	c.mu.Lock()
	c.lastStatus = status
	c.lastID = id
	c.lastExists = exists
	c.mu.Unlock()
}

// get is the dispatch primitive every query funnels through: wait for
// rate-limit capacity, GET baseURL+path, check the status, decode the
// envelope, and record the request ID and exists flag.
func (c *Client) get(ctx context.Context, path string) (*apiResponse, error) {
	c.storeLast(0, "", false)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	resp, err := c.http.Get(ctx, c.baseURL+path, c.headers)
	if err != nil {
		return nil, &RequestError{Endpoint: path, Err: err}
	}

	status := resp.StatusCode()
	body := resp.Body()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		c.storeLast(status, "", false)
		return nil, &RequestError{
			Endpoint:   path,
			StatusCode: status,
			Snippet:    responseSnippet(body),
			Err:        fmt.Errorf("unexpected status %d", status),
		}
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.storeLast(status, "", false)
		return nil, &RequestError{
			Endpoint:   path,
			StatusCode: status,
			Snippet:    responseSnippet(body),
			Err:        fmt.Errorf("decode response body: %w", err),
		}
	}

	c.storeLast(status, payload.ID, bool(payload.Response.Exists))
	c.log.DebugObj("bgpstuff request complete", "request_meta", map[string]any{
		"endpoint": path,
		"status":   status,
		"id":       payload.ID,
		"exists":   bool(payload.Response.Exists),
	})
	return &payload, nil
}

// checkIP validates that s is a public IP address before it goes on the wire.
func checkIP(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil || !bogons.IsPublicIP(addr) {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidIP, s)
	}
	return addr, nil
}

// checkASN validates that asn is a public AS number.
func checkASN(asn uint32) error {
	if !bogons.ValidPublicASN(asn) {
		return fmt.Errorf("%w: %d", ErrInvalidASN, asn)
	}
	return nil
}

// GetRoute returns the rib entry covering ip. A missing route, whether
// signalled by Exists=false, an absent Route field, or the historical
// "/0" sentinel, yields Route{Exists: false} with the zero Prefix.
func (c *Client) GetRoute(ctx context.Context, ip string) (Route, error) {
	addr, err := checkIP(ip)
	if err != nil {
		return Route{}, err
	}

	payload, err := c.get(ctx, "/route/"+addr.String())
	if err != nil {
		return Route{}, err
	}

	route := payload.Response.Route
	if !bool(payload.Response.Exists) || route == "" || route == "/0" {
		return Route{}, nil
	}
	prefix, err := parsePrefix(route)
	if err != nil {
		return Route{}, fmt.Errorf("decode route: %w", err)
	}
	return Route{Prefix: prefix, Exists: true}, nil
}

// GetOrigin returns the origin AS of the route covering ip.
func (c *Client) GetOrigin(ctx context.Context, ip string) (Origin, error) {
	addr, err := checkIP(ip)
	if err != nil {
		return Origin{}, err
	}

	payload, err := c.get(ctx, "/origin/"+addr.String())
	if err != nil {
		return Origin{}, err
	}

	res := Origin{Exists: bool(payload.Response.Exists)}
	if s := payload.Response.Origin; s != "" {
		res.ASN, err = parseASN(s)
		if err != nil {
			return Origin{}, fmt.Errorf("decode origin: %w", err)
		}
	}
	return res, nil
}

// GetASPath returns the AS_PATH towards ip, with the trailing AS_SET
// when the path was aggregated.
func (c *Client) GetASPath(ctx context.Context, ip string) (ASPath, error) {
	addr, err := checkIP(ip)
	if err != nil {
		return ASPath{}, err
	}

	payload, err := c.get(ctx, "/aspath/"+addr.String())
	if err != nil {
		return ASPath{}, err
	}

	res := ASPath{Exists: bool(payload.Response.Exists)}
	res.Path, err = parseASNs(payload.Response.ASPath)
	if err != nil {
		return ASPath{}, fmt.Errorf("decode as path: %w", err)
	}
	res.Set, err = parseASNs(payload.Response.ASSet)
	if err != nil {
		return ASPath{}, fmt.Errorf("decode as set: %w", err)
	}
	return res, nil
}

// GetROA returns the ROA validity of the route covering ip.
func (c *Client) GetROA(ctx context.Context, ip string) (ROA, error) {
	addr, err := checkIP(ip)
	if err != nil {
		return ROA{}, err
	}

	payload, err := c.get(ctx, "/roa/"+addr.String())
	if err != nil {
		return ROA{}, err
	}

	return ROA{
		Status: ROAStatus(payload.Response.ROA),
		Exists: bool(payload.Response.Exists),
	}, nil
}

// GetASName returns the registered name of asn.
func (c *Client) GetASName(ctx context.Context, asn uint32) (ASName, error) {
	if err := checkASN(asn); err != nil {
		return ASName{}, err
	}

	payload, err := c.get(ctx, "/asname/"+strconv.FormatUint(uint64(asn), 10))
	if err != nil {
		return ASName{}, err
	}

	return ASName{
		Name:   payload.Response.ASName,
		Exists: bool(payload.Response.Exists),
	}, nil
}

// GetSourced returns the prefixes originated by asn.
func (c *Client) GetSourced(ctx context.Context, asn uint32) (Sourced, error) {
	if err := checkASN(asn); err != nil {
		return Sourced{}, err
	}

	payload, err := c.get(ctx, "/sourced/"+strconv.FormatUint(uint64(asn), 10))
	if err != nil {
		return Sourced{}, err
	}

	res := Sourced{Exists: bool(payload.Response.Exists)}
	res.Prefixes, err = parsePrefixes(payload.Response.Sourced.Prefixes)
	if err != nil {
		return Sourced{}, fmt.Errorf("decode sourced prefixes: %w", err)
	}
	return res, nil
}

// GetVRPs returns the Validated ROA Payloads covering asn, keyed by
// prefix with the authorized maximum length as value.
func (c *Client) GetVRPs(ctx context.Context, asn uint32) (VRPs, error) {
	if err := checkASN(asn); err != nil {
		return VRPs{}, err
	}

	payload, err := c.get(ctx, "/vrps/"+strconv.FormatUint(uint64(asn), 10))
	if err != nil {
		return VRPs{}, err
	}

	res := VRPs{Exists: bool(payload.Response.Exists)}
	if len(payload.Response.VRPs) > 0 {
		res.Prefixes = make(map[netip.Prefix]int, len(payload.Response.VRPs))
		for _, vrp := range payload.Response.VRPs {
			prefix, err := parsePrefix(vrp.Prefix)
			if err != nil {
				return VRPs{}, fmt.Errorf("decode vrps: %w", err)
			}
			res.Prefixes[prefix] = vrp.Max
		}
	}
	return res, nil
}

// GetTotals returns the number of IPv4 and IPv6 prefixes in the
// collector's table.
func (c *Client) GetTotals(ctx context.Context) (Totals, error) {
	payload, err := c.get(ctx, "/totals")
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		IPv4: uint32(payload.Response.Totals.Ipv4),
		IPv6: uint32(payload.Response.Totals.Ipv6),
	}, nil
}

// GetInvalids returns the ROA-invalid prefixes observed by the
// collector, keyed by origin ASN. An asn of 0 returns all origins; a
// nonzero asn narrows the result to that origin, which may be empty
// when it announces no invalids.
func (c *Client) GetInvalids(ctx context.Context, asn uint32) (Invalids, error) {
	if asn != 0 {
		if err := checkASN(asn); err != nil {
			return nil, err
		}
	}

	payload, err := c.get(ctx, "/invalids/")
	if err != nil {
		return nil, err
	}

	all := make(Invalids, len(payload.Response.Invalids))
	for _, invalid := range payload.Response.Invalids {
		prefixes, err := parsePrefixes(invalid.Prefixes)
		if err != nil {
			return nil, fmt.Errorf("decode invalids for AS%d: %w", uint32(invalid.ASN), err)
		}
		all[uint32(invalid.ASN)] = prefixes
	}

	if asn == 0 {
		return all, nil
	}
	narrowed := make(Invalids, 1)
	if prefixes, ok := all[asn]; ok {
		narrowed[asn] = prefixes
	}
	return narrowed, nil
}

// GetASNames returns the full ASN to name mapping known to the collector.
func (c *Client) GetASNames(ctx context.Context) (ASNames, error) {
	payload, err := c.get(ctx, "/asnames/")
	if err != nil {
		return nil, err
	}

	names := make(ASNames, len(payload.Response.ASNames))
	for _, entry := range payload.Response.ASNames {
		names[uint32(entry.ASN)] = entry.ASName
	}
	return names, nil
}
