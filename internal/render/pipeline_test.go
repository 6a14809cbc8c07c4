package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dotnot-labs/regui/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func enrichedAt(server *httptest.Server) Variant {
	v := Enriched()
	v.BaseURL = server.URL + "/"
	v.Path = "registries"
	return v
}

func TestPipelineEnrichedPopulated(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"docker.io"},{"name":"ghcr.io","type":"registry"}]`)
	v := enrichedAt(server)

	var states []State
	p := NewPipeline(v, WithHTTPClient(server.Client()), WithObserver(func(s State) {
		states = append(states, s)
	}))

	c := dom.NewContainer(dom.ListingID)
	state := p.Run(context.Background(), c)

	assert.Equal(t, StateRendered, state)
	assert.Equal(t, []State{StateIdle, StateFetching, StateRendered}, states)

	children := c.Children()
	require.Len(t, children, 2)
	for i, name := range []string{"docker.io", "ghcr.io"} {
		assert.Equal(t, "catalog-element", children[i].Data)
		anchors := findAll(children[i], "a")
		require.Len(t, anchors, 1)
		assert.Equal(t, server.URL+"//"+name, attr(anchors[0], "href"))
	}
}

func TestPipelineMinimalRelativePath(t *testing.T) {
	gotPath := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath <- r.URL.Path
		w.Write([]byte(`[{"name":"docker.io","type":"registry"}]`))
	}))
	defer server.Close()

	p := NewPipeline(Minimal(), WithHTTPClient(server.Client()), WithPageURL(server.URL+"/"))
	c := dom.NewContainer(dom.ListingID)

	state := p.Run(context.Background(), c)

	assert.Equal(t, StateRendered, state)
	assert.Equal(t, "/registries/", <-gotPath)
	html, err := c.InnerHTML()
	require.NoError(t, err)
	assert.Equal(t, `<div class="entry registry"><a href="docker.io/">docker.io</a></div>`, html)
}

func TestPipelinePageURLReachesEnrichedEntry(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"docker.io"}]`)
	v := Enriched()
	v.BaseURL = ""
	v.Path = "/registries"

	p := NewPipeline(v, WithHTTPClient(server.Client()), WithPageURL(server.URL+"/ui/"))
	c := dom.NewContainer(dom.ListingID)

	require.Equal(t, StateRendered, p.Run(context.Background(), c))
	html, err := c.InnerHTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<a href="/docker.io">`)
	assert.Contains(t, html, server.URL+"/docker.io<i")
}

func TestPipelineKeepsExplicitEntryPageURL(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"docker.io"}]`)
	v := Enriched()
	v.BaseURL = ""
	v.Path = "/registries"
	v.Builder = EnrichedEntry{PageURL: "http://elsewhere.example/"}

	p := NewPipeline(v, WithHTTPClient(server.Client()), WithPageURL(server.URL+"/"))
	c := dom.NewContainer(dom.ListingID)

	require.Equal(t, StateRendered, p.Run(context.Background(), c))
	html, err := c.InnerHTML()
	require.NoError(t, err)
	assert.Contains(t, html, "http://elsewhere.example/docker.io<i")
}

func TestPipelineEmptyAndNotList(t *testing.T) {
	for _, body := range []string{`[]`, `{}`, `null`} {
		t.Run(body, func(t *testing.T) {
			server := catalogServer(t, http.StatusOK, body)
			p := NewPipeline(enrichedAt(server), WithHTTPClient(server.Client()))
			c := dom.NewContainer(dom.ListingID)

			state := p.Run(context.Background(), c)

			assert.Equal(t, StateRenderedEmpty, state)
			assert.Equal(t, "No registry proxies found.", c.TextContent())
		})
	}
}

func TestPipelineTransportFailure(t *testing.T) {
	server := catalogServer(t, http.StatusServiceUnavailable, `{"error":"maintenance"}`)
	p := NewPipeline(enrichedAt(server), WithHTTPClient(server.Client()))
	c := dom.NewContainer(dom.ListingID)

	state := p.Run(context.Background(), c)

	assert.Equal(t, StateRenderedError, state)
	assert.Equal(t, "Error loading registries: Failed to fetch catalog data", c.TextContent())
	assert.NotContains(t, c.TextContent(), "503")
	assert.NotContains(t, c.TextContent(), "maintenance")
}

func TestPipelineDecodeFailure(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `<html>`)
	v := Minimal()
	v.BaseURL = server.URL
	p := NewPipeline(v, WithHTTPClient(server.Client()))
	c := dom.NewContainer(dom.ListingID)

	state := p.Run(context.Background(), c)

	assert.Equal(t, StateRenderedError, state)
	assert.Contains(t, c.TextContent(), "Failed to load directory listing: ")
	assert.Len(t, c.Children(), 1)
}

func TestPipelineMalformedEntries(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"type":"registry"}]`)
	p := NewPipeline(enrichedAt(server), WithHTTPClient(server.Client()))
	c := dom.NewContainer(dom.ListingID)

	state := p.Run(context.Background(), c)

	assert.Equal(t, StateRenderedError, state)
	assert.Contains(t, c.TextContent(), "Error loading registries: invalid catalog")
}

func TestPipelineNullTypeStillRenders(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"docker.io","type":null},{"name":"quay.io"}]`)
	p := NewPipeline(enrichedAt(server), WithHTTPClient(server.Client()))
	c := dom.NewContainer(dom.ListingID)

	state := p.Run(context.Background(), c)

	assert.Equal(t, StateRendered, state)
	assert.Len(t, c.Children(), 2)
}

func TestPipelineIdempotent(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"a"},{"name":"b"},{"name":"c"}]`)
	p := NewPipeline(enrichedAt(server), WithHTTPClient(server.Client()))

	c := dom.NewContainer(dom.ListingID)
	p.Run(context.Background(), c)
	first := outer(t, c)
	firstNodes := c.Children()

	p.Run(context.Background(), c)
	second := outer(t, c)

	assert.Equal(t, first, second)
	require.Len(t, c.Children(), 3)
	assert.NotSame(t, firstNodes[0], c.Children()[0])
}

func TestPipelineLastBegunRunWins(t *testing.T) {
	var calls atomic.Int32
	firstArrived := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(firstArrived)
			<-release
			w.Write([]byte(`[{"name":"stale"}]`))
			return
		}
		w.Write([]byte(`[{"name":"fresh"}]`))
	}))
	defer server.Close()

	v := Minimal()
	v.BaseURL = server.URL
	p := NewPipeline(v, WithHTTPClient(server.Client()))
	c := dom.NewContainer(dom.ListingID)

	var wg sync.WaitGroup
	var slow State
	wg.Add(1)
	go func() {
		defer wg.Done()
		slow = p.Run(context.Background(), c)
	}()

	<-firstArrived
	fast := p.Run(context.Background(), c)
	close(release)
	wg.Wait()

	assert.Equal(t, StateRendered, fast)
	assert.Equal(t, StateSuperseded, slow)
	assert.Equal(t, "fresh", c.TextContent())
}

func TestVariantByName(t *testing.T) {
	v, err := VariantByName("minimal")
	require.NoError(t, err)
	assert.Equal(t, "No entries found.", v.EmptyText)
	assert.Equal(t, "/registries/", v.Path)

	v, err = VariantByName("")
	require.NoError(t, err)
	assert.Equal(t, EnrichedName, v.Name)
	assert.Equal(t, "https://registry.np.dotnot.pl/", v.BaseURL)
	assert.Equal(t, "registries", v.Path)

	_, err = VariantByName("fancy")
	assert.Error(t, err)
}
