package render

import (
	"fmt"

	"github.com/dotnot-labs/regui/internal/catalog"
	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/dotnot-labs/regui/internal/urljoin"
	"github.com/microcosm-cc/bluemonday"
)

// EntryBuilder produces the node spec for one catalog entry.
type EntryBuilder interface {
	Build(entry catalog.Entry, baseURL string) dom.Spec
}

// MinimalEntry renders a single link per entry:
//
//	<div class="entry registry"><a href="NAME/">NAME</a></div>
//
// The "registry" class is present only for entries typed "registry".
type MinimalEntry struct{}

func (MinimalEntry) Build(entry catalog.Entry, baseURL string) dom.Spec {
	modifier := ""
	if entry.IsRegistry() {
		modifier = catalog.RegistryType
	}
	return dom.Spec{
		Tag:   "div",
		Attrs: []dom.Attr{{Key: "class", Val: "entry " + modifier}},
		Children: []dom.Spec{{
			Tag:   "a",
			Attrs: []dom.Attr{{Key: "href", Val: urljoin.Trailing(baseURL, entry.Name)}},
			Text:  entry.Name,
		}},
	}
}

// EnrichedEntry renders a material card per entry:
//
//	catalog-element > div.content > material-card.list.highlight
//	    > a[href] > material-waves > div#waves
//	    > span (icon, name, right-aligned resolved href)
//
// The entry name and resolved href are interpolated into the span's markup
// as-is unless Sanitize is set.
type EnrichedEntry struct {
	// PageURL is the URL of the hosting page, used to resolve relative
	// hrefs for display.
	PageURL string
	// Join builds the anchor href from the base URL and entry name.
	// Defaults to urljoin.Slash.
	Join urljoin.Policy
	// Sanitize strips markup from interpolated values.
	Sanitize bool
}

// NotAvailable is displayed when the anchor href is empty.
const NotAvailable = "N/A"

const infoMarkup = `
            <i class="material-icons">send</i>
                %s
                <div class="item-count right">%s<i class="material-icons animated"></i></div>`

var strict = bluemonday.StrictPolicy()

func (b EnrichedEntry) Build(entry catalog.Entry, baseURL string) dom.Spec {
	join := b.Join
	if join == nil {
		join = urljoin.Slash
	}
	href := join(baseURL, entry.Name)

	shown := urljoin.Resolve(b.PageURL, href)
	if shown == "" {
		shown = NotAvailable
	}

	name := entry.Name
	if b.Sanitize {
		name = strict.Sanitize(name)
		shown = strict.Sanitize(shown)
	}

	return dom.Spec{
		Tag: "catalog-element",
		Children: []dom.Spec{{
			Tag:   "div",
			Attrs: []dom.Attr{{Key: "class", Val: "content"}},
			Children: []dom.Spec{{
				Tag:   "material-card",
				Attrs: []dom.Attr{{Key: "class", Val: "list highlight"}},
				Children: []dom.Spec{
					{
						Tag:   "a",
						Attrs: []dom.Attr{{Key: "href", Val: href}},
						Children: []dom.Spec{{
							Tag: "material-waves",
							Children: []dom.Spec{{
								Tag:   "div",
								Attrs: []dom.Attr{{Key: "id", Val: "waves"}},
							}},
						}},
					},
					{
						Tag:  "span",
						HTML: fmt.Sprintf(infoMarkup, name, shown),
					},
				},
			}},
		}},
	}
}
