package cli

import (
	"github.com/dotnot-labs/regui/internal/config"
	"github.com/dotnot-labs/regui/internal/render"
	"github.com/spf13/cobra"
)

// listingFlags are shared by the commands that run the listing pipeline.
type listingFlags struct {
	variant   string
	sourceURL string
	path      string
	sanitize  bool
}

func (f *listingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.variant, "variant", "", "Listing variant (minimal, enriched)")
	cmd.Flags().StringVar(&f.sourceURL, "source-url", "", "Catalog base URL, joined verbatim with --path")
	cmd.Flags().StringVar(&f.path, "path", "", "Catalog path appended to --source-url")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", false, "Strip markup from entry names in the enriched listing")
}

// resolve builds the variant from flags, then settings, then the variant's
// own defaults.
func (f *listingFlags) resolve(cmd *cobra.Command) (render.Variant, error) {
	name := f.variant
	if !cmd.Flags().Changed("variant") {
		name = config.Get(config.KeyVariant)
	}
	v, err := render.VariantByName(name)
	if err != nil {
		return render.Variant{}, err
	}

	switch {
	case cmd.Flags().Changed("source-url"):
		v.BaseURL = f.sourceURL
	case config.IsSet(config.KeySourceURL):
		v.BaseURL = config.Get(config.KeySourceURL)
	}
	switch {
	case cmd.Flags().Changed("path"):
		v.Path = f.path
	case config.IsSet(config.KeyCatalogPath):
		v.Path = config.Get(config.KeyCatalogPath)
	}

	if f.sanitize {
		if b, ok := v.Builder.(render.EnrichedEntry); ok {
			b.Sanitize = true
			v.Builder = b
		}
	}
	return v, nil
}
