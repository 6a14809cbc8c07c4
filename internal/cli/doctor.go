package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dotnot-labs/regui/internal/config"
	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/dotnot-labs/regui/internal/proxyconfig"
	"github.com/dotnot-labs/regui/internal/render"
	"github.com/spf13/cobra"
)

var (
	doctorFlags       listingFlags
	doctorProxyConfig string
	doctorSkipFetch   bool
)

func init() {
	doctorFlags.register(doctorCmd)
	doctorCmd.Flags().StringVar(&doctorProxyConfig, "proxy-config", "", "Validate the proxy configuration file at the given path")
	doctorCmd.Flags().BoolVar(&doctorSkipFetch, "skip-fetch", false, "Do not contact the catalog endpoint")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check settings, proxy config and catalog reachability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0

		checkSettings(out)

		proxyPath := doctorProxyConfig
		if proxyPath == "" {
			proxyPath = config.Get(config.KeyProxyConfig)
		}
		if proxyPath != "" && !checkProxyConfig(out, proxyPath) {
			failed++
		}

		if !doctorSkipFetch {
			v, err := doctorFlags.resolve(cmd)
			if err != nil {
				return err
			}
			if !checkCatalog(cmd.Context(), out, v) {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func checkSettings(out io.Writer) {
	fmt.Fprintln(out, "Settings check:")
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, "  [INFO] %s not found, using defaults\n", path)
		return
	}
	fmt.Fprintf(out, "  [ OK ] %s\n", path)
}

func checkProxyConfig(out io.Writer, path string) bool {
	fmt.Fprintf(out, "Proxy config validation: %s\n", path)

	f, err := proxyconfig.Load(path)
	if err != nil {
		var ve *proxyconfig.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(ve.Issues))
			for _, issue := range ve.Issues {
				fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
			}
			return false
		}
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}

	fmt.Fprintf(out, "  [ OK ] %d registr(ies) declared\n", len(f.Registries))
	for _, name := range f.Names() {
		derived, err := f.RegistryName(name, proxyconfig.DefaultNameParts)
		if err != nil {
			fmt.Fprintf(out, "  [WARN] %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %s -> %s\n", name, derived)
	}
	return true
}

func checkCatalog(ctx context.Context, out io.Writer, v render.Variant) bool {
	fmt.Fprintf(out, "Catalog check (%s): %s%s\n", v.Name, v.BaseURL, v.Path)

	target := dom.NewContainer(dom.ListingID)
	state := render.NewPipeline(v).Run(ctx, target)

	switch state {
	case render.StateRendered:
		fmt.Fprintf(out, "  [ OK ] %d entr(ies) listed\n", len(target.Children()))
		return true
	case render.StateRenderedEmpty:
		fmt.Fprintf(out, "  [WARN] %s\n", target.TextContent())
		return true
	default:
		fmt.Fprintf(out, "  [FAIL] %s\n", target.TextContent())
		return false
	}
}
