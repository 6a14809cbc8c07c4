package render

import (
	"context"
	"net/http"

	"github.com/dotnot-labs/regui/internal/catalog"
	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Pipeline runs fetch then render for one variant.
type Pipeline struct {
	variant  Variant
	fetcher  *catalog.Fetcher
	renderer *Renderer
	log      *logrus.Entry

	httpClient *http.Client
	pageURL    string
	observe    func(State)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHTTPClient sets the client used for the catalog request.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pipeline) {
		p.httpClient = c
	}
}

// WithPageURL sets the URL of the page that hosts the container. Relative
// catalog locations are resolved against it, and an EnrichedEntry builder
// without its own PageURL displays hrefs resolved against it.
func WithPageURL(u string) Option {
	return func(p *Pipeline) {
		p.pageURL = u
	}
}

// WithObserver registers a callback invoked on every state transition.
func WithObserver(fn func(State)) Option {
	return func(p *Pipeline) {
		p.observe = fn
	}
}

// NewPipeline creates a Pipeline for v.
func NewPipeline(v Variant, opts ...Option) *Pipeline {
	p := &Pipeline{
		variant: v,
		log:     logging.For(logging.CatFetch).WithField("variant", v.Name),
	}
	for _, opt := range opts {
		opt(p)
	}
	if b, ok := v.Builder.(EnrichedEntry); ok && b.PageURL == "" && p.pageURL != "" {
		b.PageURL = p.pageURL
		v.Builder = b
		p.variant = v
	}

	fetchOpts := []catalog.Option{
		catalog.WithFailureMessage(v.FailureMessage),
		catalog.WithLogger(p.log),
		catalog.WithPageURL(p.pageURL),
	}
	if p.httpClient != nil {
		fetchOpts = append(fetchOpts, catalog.WithHTTPClient(p.httpClient))
	}
	p.fetcher = catalog.NewFetcher(fetchOpts...)
	p.renderer = NewRenderer(v)
	return p
}

// Variant returns the pipeline's variant.
func (p *Pipeline) Variant() Variant {
	return p.variant
}

// Run performs one best-effort fetch and renders the outcome into target.
// If another Run on the same target begins before this one finishes, this
// run's result is discarded and StateSuperseded is returned.
func (p *Pipeline) Run(ctx context.Context, target *dom.Container) State {
	log := p.log.WithField("invocation", uuid.NewString())
	p.transition(log, StateIdle)

	ticket := target.Begin()
	p.transition(log, StateFetching)

	res := p.fetch(ctx)

	state := StateSuperseded
	target.Commit(ticket, func() {
		state = p.renderer.Render(target, res)
	})
	p.transition(log, state)
	return state
}

func (p *Pipeline) fetch(ctx context.Context) Result {
	raw, err := p.fetcher.Fetch(ctx, p.variant.BaseURL, p.variant.Path)
	if err != nil {
		return Result{Err: err}
	}
	listing, err := catalog.Parse(raw)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Listing: listing}
}

func (p *Pipeline) transition(log *logrus.Entry, s State) {
	log.WithField("state", s).Debug("pipeline state")
	if p.observe != nil {
		p.observe(s)
	}
}
