// Package proxyconfig reads the registry proxy configuration file: a YAML
// document with a `common` mapping shared by every proxy and a `registries`
// mapping of per-proxy overrides. It merges the two into the effective
// configuration of one proxy, derives short registry names from each proxy's
// remote URL, and exposes the configured proxies as a catalog listing.
package proxyconfig
