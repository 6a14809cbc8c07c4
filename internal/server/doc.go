// Package server hosts the listing page. Every page request gets its own
// container and one pipeline run; the served catalog endpoint, when
// configured, exposes the proxies of a proxy configuration file.
package server
