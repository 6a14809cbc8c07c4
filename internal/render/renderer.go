package render

import (
	"fmt"

	"github.com/dotnot-labs/regui/internal/catalog"
	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// State is the position of one invocation in its lifecycle:
// Idle -> Fetching -> Rendered | RenderedEmpty | RenderedError.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateRendered
	StateRenderedEmpty
	StateRenderedError
	// StateSuperseded marks an invocation whose result was dropped because a
	// later invocation on the same container began before it finished.
	StateSuperseded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateRenderedEmpty:
		return "rendered-empty"
	case StateRenderedError:
		return "rendered-error"
	case StateSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends an invocation.
func (s State) Terminal() bool {
	return s >= StateRendered
}

// Result is what the fetch stage hands to the renderer: a validated listing
// or the error that stopped it.
type Result struct {
	Listing catalog.Listing
	Err     error
}

// Renderer writes a Result into a container using one variant.
type Renderer struct {
	Variant Variant
	log     *logrus.Entry
}

// NewRenderer creates a Renderer for v.
func NewRenderer(v Variant) *Renderer {
	return &Renderer{Variant: v, log: logging.For(logging.CatRender).WithField("variant", v.Name)}
}

// Render clears target and repopulates it from res. Entries are appended in
// catalog order, one node each. An empty or non-list catalog sets the
// variant's empty text; an error sets ErrorPrefix + the error message.
func (r *Renderer) Render(target *dom.Container, res Result) State {
	target.Clear()

	if res.Err != nil {
		r.log.WithError(res.Err).Debug("rendering failure")
		target.SetTextContent(r.Variant.ErrorPrefix + res.Err.Error())
		return StateRenderedError
	}

	if res.Listing.Empty() {
		r.log.WithField("shape", res.Listing.Shape).Debug("rendering empty state")
		target.SetTextContent(r.Variant.EmptyText)
		return StateRenderedEmpty
	}

	nodes := make([]*html.Node, 0, len(res.Listing.Entries))
	for i, entry := range res.Listing.Entries {
		n, err := dom.Materialize(r.Variant.Builder.Build(entry, r.Variant.BaseURL))
		if err != nil {
			err = fmt.Errorf("building entry %d: %w", i, err)
			r.log.WithError(err).Warn("entry build failed")
			target.SetTextContent(r.Variant.ErrorPrefix + err.Error())
			return StateRenderedError
		}
		nodes = append(nodes, n)
	}
	target.Append(nodes...)

	r.log.WithField("entries", len(nodes)).Debug("rendered listing")
	return StateRendered
}
