package proxyconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dotnot-labs/regui/internal/catalog"
	"go.yaml.in/yaml/v3"
)

// DefaultNameParts is the number of trailing host labels kept by
// RegistryName when no count is given.
const DefaultNameParts = 2

// ErrNoRemoteURL is returned when a registry has no proxy.remoteurl or the
// URL has no usable host.
var ErrNoRemoteURL = errors.New("no proxy.remoteurl configured")

// HostnameFromURL extracts the host of a URL without port. Values without a
// scheme ("registry-1.docker.io/v2") are read as host-first paths.
func HostnameFromURL(value string) string {
	host := value
	if u, err := url.Parse(value); err == nil && u.Host != "" {
		host = u.Host
	} else if _, rest, ok := strings.Cut(value, "://"); ok {
		host = rest
	}
	host, _, _ = strings.Cut(host, "/")
	host, _, _ = strings.Cut(host, ":")
	return host
}

// NameFromHost keeps the last parts labels of host (at least one).
func NameFromHost(host string, parts int) string {
	if host == "" {
		return ""
	}
	if parts < 1 {
		parts = 1
	}
	labels := strings.Split(host, ".")
	if len(labels) <= parts {
		return strings.Join(labels, ".")
	}
	return strings.Join(labels[len(labels)-parts:], ".")
}

// RemoteURL returns the registry's proxy.remoteurl.
func (f *File) RemoteURL(registry string) (string, error) {
	reg, ok := f.Registries[registry]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRegistryNotFound, registry)
	}
	remote := resolve(lookup(resolve(lookup(reg, "proxy")), "remoteurl"))
	if remote == nil || remote.Kind != yaml.ScalarNode || remote.Value == "" || remote.Tag == "!!null" {
		return "", fmt.Errorf("registry %q: %w", registry, ErrNoRemoteURL)
	}
	return remote.Value, nil
}

// RegistryName derives a short name for registry from the host of its
// remote URL, e.g. "registry-1.docker.io" with parts=2 gives "docker.io".
func (f *File) RegistryName(registry string, parts int) (string, error) {
	remote, err := f.RemoteURL(registry)
	if err != nil {
		return "", err
	}
	name := NameFromHost(HostnameFromURL(remote), parts)
	if name == "" {
		return "", fmt.Errorf("registry %q: %w", registry, ErrNoRemoteURL)
	}
	return name, nil
}

// Catalog lists the configured proxies as catalog entries named by their
// key, sorted, each typed as a registry.
func (f *File) Catalog() []catalog.Entry {
	names := f.Names()
	entries := make([]catalog.Entry, 0, len(names))
	for _, key := range names {
		entries = append(entries, catalog.Entry{Name: key, Type: catalog.RegistryType})
	}
	return entries
}
