package render

import (
	"fmt"
	"strings"

	"github.com/dotnot-labs/regui/internal/branding"
)

// Variant names.
const (
	MinimalName  = "minimal"
	EnrichedName = "enriched"
)

// Variant configures one flavor of the listing.
type Variant struct {
	Name string

	// EmptyText is shown when the catalog lists nothing.
	EmptyText string
	// ErrorPrefix is prepended to the failure message.
	ErrorPrefix string
	// FailureMessage is the generic transport failure text.
	FailureMessage string

	// BaseURL and Path locate the catalog; they are joined verbatim.
	BaseURL string
	Path    string

	Builder EntryBuilder
}

// Minimal is the plain directory listing served next to the catalog
// endpoint: relative catalog path, one link per entry.
func Minimal() Variant {
	return Variant{
		Name:           MinimalName,
		EmptyText:      "No entries found.",
		ErrorPrefix:    "Failed to load directory listing: ",
		FailureMessage: "Network response was not ok",
		BaseURL:        "",
		Path:           "/registries/",
		Builder:        MinimalEntry{},
	}
}

// Enriched is the card listing pointed at an absolute proxy URL.
func Enriched() Variant {
	return Variant{
		Name:           EnrichedName,
		EmptyText:      "No registry proxies found.",
		ErrorPrefix:    "Error loading registries: ",
		FailureMessage: "Failed to fetch catalog data",
		BaseURL:        branding.SourceURL(),
		Path:           branding.CatalogPath(),
		Builder:        EnrichedEntry{},
	}
}

// VariantByName returns the named variant.
func VariantByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MinimalName:
		return Minimal(), nil
	case EnrichedName, "":
		return Enriched(), nil
	default:
		return Variant{}, fmt.Errorf("unknown listing variant %q (want %s or %s)", name, MinimalName, EnrichedName)
	}
}
