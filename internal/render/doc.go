// Package render turns a fetched catalog into the listing subtree.
//
// One Pipeline drives both listing variants: it fetches the catalog, parses
// it into a catalog.Listing and hands the result to a Renderer, which clears
// the container and writes either one node per entry, the variant's
// empty-state text or its error text. Variants differ only in their
// configuration: strings, catalog location and EntryBuilder.
package render
