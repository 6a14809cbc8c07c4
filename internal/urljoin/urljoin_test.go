package urljoin

import "testing"

func TestPolicies(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		base    string
		segment string
		want    string
	}{
		{"concat relative", Concat, "", "/registries/", "/registries/"},
		{"concat absolute", Concat, "https://registry.np.dotnot.pl/", "registries", "https://registry.np.dotnot.pl/registries"},
		{"concat keeps doubled slash", Concat, "https://host/", "/registries", "https://host//registries"},
		{"concat keeps missing slash", Concat, "https://host", "registries", "https://hostregistries"},
		{"slash plain", Slash, "https://host", "foo", "https://host/foo"},
		{"slash doubled", Slash, "https://registry.np.dotnot.pl/", "foo", "https://registry.np.dotnot.pl//foo"},
		{"slash no encoding", Slash, "https://host", "a b", "https://host/a b"},
		{"trailing", Trailing, "ignored", "foo", "foo/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy(tt.base, tt.segment); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		pageURL string
		href    string
		want    string
	}{
		{"absolute href", "http://page/", "https://host//foo", "https://host//foo"},
		{"relative href", "http://page/listing/", "foo/", "http://page/listing/foo/"},
		{"no page url", "", "foo/", "foo/"},
		{"bad href", "http://page/", "http://[::1", "http://[::1"},
		{"bad escape", "", "https://host//100%", "https://host//100%"},
		{"bad page url", "http://[::1", "foo/", "foo/"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.pageURL, tt.href); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.pageURL, tt.href, got, tt.want)
			}
		})
	}
}
