package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/bgpstuff/bgpstuff-go/internal/config"
	"github.com/bgpstuff/bgpstuff-go/internal/logger"
	"github.com/bgpstuff/bgpstuff-go/pkg/bgpstuff"
)

// App is the CLI runtime. It owns one bgpstuff client and renders query
// results as human-readable lines to out.
type App struct {
	cfg    *config.Config
	client *bgpstuff.Client
	out    io.Writer
	log    logger.Logger
}

// New builds the CLI runtime from config. Extra client options are
// appended after the config-derived ones, so tests can inject a
// transport.
func New(cfg *config.Config, log logger.Logger, out io.Writer, opts ...bgpstuff.Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if out == nil {
		out = os.Stdout
	}

	clientOpts := append([]bgpstuff.Option{
		bgpstuff.WithBaseURL(cfg.BGPStuffURL),
		bgpstuff.WithTimeout(cfg.RequestTimeout),
		bgpstuff.WithRateLimit(cfg.RateLimit, cfg.RateWindow),
		bgpstuff.WithLogger(log),
	}, opts...)

	client, err := bgpstuff.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("build bgpstuff client: %w", err)
	}

	return &App{cfg: cfg, client: client, out: out, log: log}, nil
}

// Close releases the client's transport.
func (a *App) Close() error {
	if a == nil || a.client == nil {
		return nil
	}
	return a.client.Close()
}

// ParseASN converts a CLI argument into an AS number.
func ParseASN(arg string) (uint32, error) {
	asn, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid AS number %q", arg)
	}
	return uint32(asn), nil
}

// Route prints the rib entry covering ip.
func (a *App) Route(ctx context.Context, ip string) error {
	route, err := a.client.GetRoute(ctx, ip)
	if err != nil {
		return err
	}
	if !route.Exists {
		fmt.Fprintf(a.out, "route does not exist for %s\n", ip)
		return nil
	}
	fmt.Fprintf(a.out, "The route for %s is %s\n", ip, route.Prefix)
	return nil
}

// Origin prints the origin AS of the route covering ip.
func (a *App) Origin(ctx context.Context, ip string) error {
	origin, err := a.client.GetOrigin(ctx, ip)
	if err != nil {
		return err
	}
	if !origin.Exists {
		fmt.Fprintf(a.out, "route does not exist for %s so unable to check the origin\n", ip)
		return nil
	}
	fmt.Fprintf(a.out, "The origin for %s is %d\n", ip, origin.ASN)
	return nil
}

// ASPath prints the AS path towards ip.
func (a *App) ASPath(ctx context.Context, ip string) error {
	path, err := a.client.GetASPath(ctx, ip)
	if err != nil {
		return err
	}
	if !path.Exists {
		fmt.Fprintf(a.out, "route does not exist for %s so unable to check the aspath\n", ip)
		return nil
	}
	fmt.Fprintf(a.out, "The aspath for %s is %s\n", ip, path.FullPath())
	return nil
}

// ROA prints the ROA validity of the route covering ip.
func (a *App) ROA(ctx context.Context, ip string) error {
	roa, err := a.client.GetROA(ctx, ip)
	if err != nil {
		return err
	}
	if !roa.Exists {
		fmt.Fprintf(a.out, "route does not exist for %s so unable to check the roa\n", ip)
		return nil
	}
	fmt.Fprintf(a.out, "The roa for %s is %s\n", ip, roa.Status)
	return nil
}

// ASName prints the registered name of asn.
func (a *App) ASName(ctx context.Context, asn uint32) error {
	name, err := a.client.GetASName(ctx, asn)
	if err != nil {
		return err
	}
	if !name.Exists {
		fmt.Fprintf(a.out, "AS%d does not exist, hence no name\n", asn)
		return nil
	}
	fmt.Fprintf(a.out, "The asname for AS%d is %s\n", asn, name.Name)
	return nil
}

// Sourced prints the prefixes originated by asn.
func (a *App) Sourced(ctx context.Context, asn uint32) error {
	sourced, err := a.client.GetSourced(ctx, asn)
	if err != nil {
		return err
	}
	if !sourced.Exists {
		fmt.Fprintf(a.out, "AS%d does not exist, hence not sourcing any prefixes\n", asn)
		return nil
	}
	fmt.Fprintf(a.out, "AS%d is sourcing %d prefixes\n", asn, len(sourced.Prefixes))
	for _, prefix := range sourced.Prefixes {
		fmt.Fprintf(a.out, "  %s\n", prefix)
	}
	return nil
}

// Totals prints the number of IPv4 and IPv6 prefixes in the table.
func (a *App) Totals(ctx context.Context) error {
	totals, err := a.client.GetTotals(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "There are %d IPv4 prefixes and %d IPv6 prefixes in the table.\n", totals.IPv4, totals.IPv6)
	return nil
}

// Invalids prints the ROA-invalid prefixes, either for one origin ASN
// or, with asn 0, a per-origin summary of all of them.
func (a *App) Invalids(ctx context.Context, asn uint32) error {
	invalids, err := a.client.GetInvalids(ctx, asn)
	if err != nil {
		return err
	}

	if asn != 0 {
		prefixes := invalids.ForASN(asn)
		fmt.Fprintf(a.out, "AS%d is originating %d ROA invalid prefixes\n", asn, len(prefixes))
		for _, prefix := range prefixes {
			fmt.Fprintf(a.out, "  %s\n", prefix)
		}
		return nil
	}

	origins := make([]uint32, 0, len(invalids))
	for origin := range invalids {
		origins = append(origins, origin)
	}
	sort.Slice(origins, func(i, j int) bool { return origins[i] < origins[j] })

	fmt.Fprintf(a.out, "%d ASNs are originating ROA invalid prefixes\n", len(origins))
	for _, origin := range origins {
		fmt.Fprintf(a.out, "AS%d is originating %d ROA invalid prefixes\n", origin, len(invalids[origin]))
	}
	return nil
}

// ASNames prints the size of the ASN to name table.
func (a *App) ASNames(ctx context.Context) error {
	names, err := a.client.GetASNames(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "There are %d AS names in the table.\n", len(names))
	return nil
}

// VRPs prints the Validated ROA Payloads covering asn.
func (a *App) VRPs(ctx context.Context, asn uint32) error {
	vrps, err := a.client.GetVRPs(ctx, asn)
	if err != nil {
		return err
	}
	if !vrps.Exists {
		fmt.Fprintf(a.out, "AS%d has no VRPs\n", asn)
		return nil
	}

	fmt.Fprintf(a.out, "AS%d has %d VRPs\n", asn, len(vrps.Prefixes))
	lines := make([]string, 0, len(vrps.Prefixes))
	for prefix, maxLen := range vrps.Prefixes {
		lines = append(lines, fmt.Sprintf("  %s max length %d", prefix, maxLen))
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
	return nil
}
