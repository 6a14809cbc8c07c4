package cli

import (
	"fmt"

	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/dotnot-labs/regui/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderFlags   listingFlags
	renderPageURL string
	renderText    bool
	renderStrict  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the catalog and print the listing",
	Long: `Fetch the registry-proxy catalog once and print the populated
registryListing container as HTML.

Failures are rendered into the container as text, like the page would show
them. Use --strict to also exit non-zero when the listing shows an error.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVar(&renderPageURL, "page-url", "", "URL of the hosting page, used to resolve relative catalog paths")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Print the container's text content instead of HTML")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "Exit non-zero when the listing renders an error")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	v, err := renderFlags.resolve(cmd)
	if err != nil {
		return err
	}

	target := dom.NewContainer(dom.ListingID)
	state := render.NewPipeline(v, render.WithPageURL(renderPageURL)).Run(cmd.Context(), target)

	if renderText {
		fmt.Fprintln(cmd.OutOrStdout(), target.TextContent())
	} else {
		out, err := target.OuterHTML()
		if err != nil {
			return fmt.Errorf("serializing listing: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}

	if renderStrict && state == render.StateRenderedError {
		return fmt.Errorf("listing rendered an error: %s", target.TextContent())
	}
	return nil
}
