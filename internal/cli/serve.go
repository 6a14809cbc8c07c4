package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotnot-labs/regui/internal/config"
	"github.com/dotnot-labs/regui/internal/proxyconfig"
	"github.com/dotnot-labs/regui/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveFlags       listingFlags
	serveListen      string
	serveProxyConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the listing page",
	Long: `Serve a page whose registryListing container is populated on every
request.

With --proxy-config, the server also answers GET /registries/ with the
proxies declared in that configuration file, so the minimal listing can run
against it without a separate catalog service.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default "+config.DefaultListen+")")
	serveCmd.Flags().StringVar(&serveProxyConfig, "proxy-config", "", "Proxy configuration file to serve as the catalog")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	v, err := serveFlags.resolve(cmd)
	if err != nil {
		return err
	}

	listen := serveListen
	if listen == "" {
		listen = config.Get(config.KeyListen)
	}

	var opts []server.Option
	proxyPath := serveProxyConfig
	if proxyPath == "" {
		proxyPath = config.Get(config.KeyProxyConfig)
	}
	if proxyPath != "" {
		f, err := proxyconfig.Load(proxyPath)
		if err != nil {
			return fmt.Errorf("loading proxy config: %w", err)
		}
		opts = append(opts, server.WithCatalog(f.Catalog()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s listing on %s\n", v.Name, listen)
	return server.New(v, opts...).ListenAndServe(ctx, listen)
}
