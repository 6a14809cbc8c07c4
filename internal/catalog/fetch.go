package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/dotnot-labs/regui/internal/urljoin"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sirupsen/logrus"
)

// DefaultFailureMessage is the generic TransportError message.
const DefaultFailureMessage = "Failed to fetch catalog data"

// Fetcher retrieves the catalog document.
type Fetcher struct {
	httpClient     *http.Client
	userAgent      string
	failureMessage string
	pageURL        string
	log            *logrus.Entry
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with the request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithFailureMessage sets the generic message carried by TransportError.
func WithFailureMessage(msg string) Option {
	return func(f *Fetcher) {
		f.failureMessage = msg
	}
}

// WithPageURL sets the URL of the page hosting the listing. A relative
// catalog URL is resolved against it before the request is sent.
func WithPageURL(u string) Option {
	return func(f *Fetcher) {
		f.pageURL = u
	}
}

// WithLogger sets the log entry used for request diagnostics.
func WithLogger(l *logrus.Entry) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:     http.DefaultClient,
		userAgent:      "regui",
		failureMessage: DefaultFailureMessage,
		log:            logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch requests baseURL+path (joined verbatim) once and returns the decoded
// JSON body without interpreting it. There is no retry and no timeout other
// than what ctx imposes.
func (f *Fetcher) Fetch(ctx context.Context, baseURL, path string) (any, error) {
	target := urljoin.Concat(baseURL, path)
	if f.pageURL != "" {
		if resolved := urljoin.Resolve(f.pageURL, target); resolved != "" {
			target = resolved
		}
	}
	log := f.log.WithField("url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.WithError(err).Debug("building catalog request")
		return nil, &TransportError{Message: f.failureMessage, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	log.Debug("requesting catalog")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("catalog request failed")
		return nil, &TransportError{Message: f.failureMessage, Err: fmt.Errorf("fetching catalog: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Debug("catalog request not ok")
		return nil, &TransportError{
			Message:    f.failureMessage,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("catalog returned status %d", resp.StatusCode),
		}
	}

	doc, err := jsonschema.UnmarshalJSON(resp.Body)
	if err != nil {
		log.WithError(err).Debug("decoding catalog body")
		return nil, &DecodeError{Err: fmt.Errorf("parsing catalog JSON: %w", err)}
	}

	log.Debug("catalog decoded")
	return doc, nil
}
