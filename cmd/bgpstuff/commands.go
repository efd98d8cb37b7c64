package main

import (
	"github.com/spf13/cobra"

	"github.com/bgpstuff/bgpstuff-go/internal/app"
	"github.com/bgpstuff/bgpstuff-go/internal/config"
	"github.com/bgpstuff/bgpstuff-go/internal/logger"
)

// cli carries the runtime shared by all subcommands. The app is built
// in PersistentPreRunE so the --url override is applied after flag
// parsing.
type cli struct {
	cfg *config.Config
	log logger.Logger
	app *app.App
	url string
}

func newRootCommand(cfg *config.Config, log logger.Logger) *cobra.Command {
	c := &cli{cfg: cfg, log: log}

	root := &cobra.Command{
		Use:           "bgpstuff",
		Short:         "Query the bgpstuff.net route collector",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.url != "" {
				c.cfg.BGPStuffURL = c.url
			}
			a, err := app.New(c.cfg, c.log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&c.url, "url", "", "override the bgpstuff.net base URL")

	root.AddCommand(
		c.ipCommand("route", "Show the rib entry covering an IP address", c.route),
		c.ipCommand("origin", "Show the origin AS of the route covering an IP address", c.origin),
		c.ipCommand("aspath", "Show the AS path towards an IP address", c.aspath),
		c.ipCommand("roa", "Show the ROA validity of the route covering an IP address", c.roa),
		c.asnCommand("asname", "Show the registered name of an AS number", c.asname),
		c.asnCommand("sourced", "List the prefixes originated by an AS number", c.sourced),
		c.asnCommand("vrps", "List the Validated ROA Payloads covering an AS number", c.vrps),
		c.totalsCommand(),
		c.invalidsCommand(),
		c.asnamesCommand(),
	)

	return root
}

func (c *cli) ipCommand(use, short string, run func(*cobra.Command, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <ip>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
}

func (c *cli) asnCommand(use, short string, run func(*cobra.Command, uint32) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <asn>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asn, err := app.ParseASN(args[0])
			if err != nil {
				return err
			}
			return run(cmd, asn)
		},
	}
}

func (c *cli) totalsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show the number of IPv4 and IPv6 prefixes in the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Totals(cmd.Context())
		},
	}
}

func (c *cli) invalidsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invalids [asn]",
		Short: "List ROA invalid prefixes, for one origin or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var asn uint32
			if len(args) == 1 {
				var err error
				asn, err = app.ParseASN(args[0])
				if err != nil {
					return err
				}
			}
			return c.app.Invalids(cmd.Context(), asn)
		},
	}
}

func (c *cli) asnamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "asnames",
		Short: "Fetch the full AS number to name table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ASNames(cmd.Context())
		},
	}
}

func (c *cli) route(cmd *cobra.Command, ip string) error {
	return c.app.Route(cmd.Context(), ip)
}

func (c *cli) origin(cmd *cobra.Command, ip string) error {
	return c.app.Origin(cmd.Context(), ip)
}

func (c *cli) aspath(cmd *cobra.Command, ip string) error {
	return c.app.ASPath(cmd.Context(), ip)
}

func (c *cli) roa(cmd *cobra.Command, ip string) error {
	return c.app.ROA(cmd.Context(), ip)
}

func (c *cli) asname(cmd *cobra.Command, asn uint32) error {
	return c.app.ASName(cmd.Context(), asn)
}

func (c *cli) sourced(cmd *cobra.Command, asn uint32) error {
	return c.app.Sourced(cmd.Context(), asn)
}

func (c *cli) vrps(cmd *cobra.Command, asn uint32) error {
	return c.app.VRPs(cmd.Context(), asn)
}
