package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REGUI_HOME", t.TempDir())
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func catalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRenderEnriched(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"docker.io"}]`)

	out, err := execute(t, "render", "--source-url", server.URL+"/", "--path", "registries")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<div id="registryListing"><catalog-element>`))
	assert.Contains(t, out, `<a href="`+server.URL+`//docker.io">`)
}

func TestRenderMinimalText(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[]`)

	out, err := execute(t, "render", "--variant", "minimal", "--page-url", server.URL+"/", "--text")
	require.NoError(t, err)
	assert.Equal(t, "No entries found.\n", out)
}

func TestRenderErrorIsOutputNotFailure(t *testing.T) {
	server := catalogServer(t, http.StatusInternalServerError, `oops`)

	out, err := execute(t, "render", "--source-url", server.URL, "--path", "/registries", "--text")
	require.NoError(t, err)
	assert.Equal(t, "Error loading registries: Failed to fetch catalog data\n", out)
}

func TestRenderStrict(t *testing.T) {
	server := catalogServer(t, http.StatusInternalServerError, `oops`)

	_, err := execute(t, "render", "--source-url", server.URL, "--path", "/registries", "--strict")
	assert.Error(t, err)
}

func TestRenderUsesSettings(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `{}`)
	t.Setenv("REGUI_SOURCE_URL", server.URL)
	t.Setenv("REGUI_CATALOG_PATH", "/registries")
	t.Setenv("REGUI_VARIANT", "minimal")

	out, err := execute(t, "render", "--text")
	require.NoError(t, err)
	assert.Equal(t, "No entries found.\n", out)
}

func TestRenderUnknownVariant(t *testing.T) {
	_, err := execute(t, "render", "--variant", "cards")
	assert.Error(t, err)
}

const proxyConfig = `common:
  proxy:
    ttl: 168h
registries:
  dockerhub:
    proxy:
      remoteurl: https://registry-1.docker.io
  ghcr:
    proxy:
      remoteurl: https://ghcr.io
`

func writeProxyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(proxyConfig), 0644))
	return path
}

func TestProxyList(t *testing.T) {
	path := writeProxyConfig(t)
	out, err := execute(t, "proxy", "list", path)
	require.NoError(t, err)
	assert.Equal(t, "dockerhub\nghcr\n", out)
}

func TestProxyName(t *testing.T) {
	path := writeProxyConfig(t)

	out, err := execute(t, "proxy", "name", path, "dockerhub")
	require.NoError(t, err)
	assert.Equal(t, "docker.io\n", out)

	out, err = execute(t, "proxy", "name", path, "dockerhub", "--parts", "3")
	require.NoError(t, err)
	assert.Equal(t, "registry-1.docker.io\n", out)

	_, err = execute(t, "proxy", "name", path, "missing")
	assert.Error(t, err)
}

func TestProxyMerge(t *testing.T) {
	path := writeProxyConfig(t)
	outPath := filepath.Join(t.TempDir(), "merged.yml")

	_, err := execute(t, "proxy", "merge", path, "ghcr", "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "proxy:\n  ttl: 168h\n  remoteurl: https://ghcr.io\n", string(data))
}

func TestProxyMergeRequiresOutput(t *testing.T) {
	path := writeProxyConfig(t)
	_, err := execute(t, "proxy", "merge", path, "ghcr")
	assert.Error(t, err)
}

func TestConfigSetGet(t *testing.T) {
	home := t.TempDir()

	run := func(args ...string) string {
		t.Helper()
		t.Setenv("REGUI_HOME", home)
		viper.Reset()
		resetFlags(rootCmd)
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}
	t.Cleanup(viper.Reset)

	assert.Equal(t, "Set variant = minimal\n", run("config", "set", "variant", "minimal"))
	assert.Equal(t, "minimal\n", run("config", "get", "variant"))
	assert.Contains(t, run("config", "list"), "variant")
}

func TestDoctor(t *testing.T) {
	server := catalogServer(t, http.StatusOK, `[{"name":"a"},{"name":"b"}]`)
	path := writeProxyConfig(t)

	out, err := execute(t, "doctor", "--proxy-config", path, "--source-url", server.URL, "--path", "/registries")
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] dockerhub -> docker.io")
	assert.Contains(t, out, "[ OK ] 2 entr(ies) listed")
}

func TestDoctorReportsProxyConfigIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("common: {}\nregistries:\n  bad:\n    proxy:\n      remoteurl:\n        host: x\n"), 0644))

	out, err := execute(t, "doctor", "--proxy-config", path, "--skip-fetch")
	assert.Error(t, err)
	assert.Contains(t, out, "[FAIL] 1 validation issue(s):")
	assert.Contains(t, out, "- /registries/bad/proxy/remoteurl:")
}

func TestDoctorFailsOnUnreachableCatalog(t *testing.T) {
	server := catalogServer(t, http.StatusNotFound, ``)

	out, err := execute(t, "doctor", "--source-url", server.URL, "--path", "/registries")
	assert.Error(t, err)
	assert.Contains(t, out, "[FAIL] Error loading registries: Failed to fetch catalog data")
}

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.4.0", "abc123", "2026-01-01"
	t.Cleanup(func() { buildVersion, buildCommit, buildDate = "", "", "" })

	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0\n", out)
}

func TestDisplayVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", displayVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", displayVersion("v1.2.3"))
	assert.Equal(t, "v1.2.0-rc.1", displayVersion("1.2-rc.1"))
	assert.Equal(t, "dev", displayVersion("dev"))
}
