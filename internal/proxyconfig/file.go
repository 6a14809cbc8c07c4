package proxyconfig

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"
)

var (
	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = errors.New("config must be a mapping")

	// ErrMissingSections is returned when `common` or `registries` is
	// absent or not a mapping.
	ErrMissingSections = errors.New("config must contain 'common' and 'registries' mappings")

	// ErrRegistryNotFound is returned for an unknown or non-mapping registry key.
	ErrRegistryNotFound = errors.New("registry not found")
)

// File is a loaded proxy configuration.
type File struct {
	Path       string
	Common     *yaml.Node
	Registries map[string]*yaml.Node
}

// Load reads and validates the configuration at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	log := logging.For(logging.CatConfig).WithField("path", path)
	f, err := Parse(data)
	if err != nil {
		log.WithError(err).Debug("proxy config rejected")
		return nil, err
	}
	f.Path = path
	log.WithFields(logrus.Fields{"registries": len(f.Registries)}).Debug("proxy config loaded")
	return f, nil
}

// Parse validates configuration bytes. An empty document is treated as an
// empty mapping.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	root := resolve(&doc)
	if root == nil || root.Kind == 0 || (root.Kind == yaml.ScalarNode && root.Tag == "!!null") {
		root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	common := resolve(lookup(root, "common"))
	registries := resolve(lookup(root, "registries"))
	if common == nil || common.Kind != yaml.MappingNode ||
		registries == nil || registries.Kind != yaml.MappingNode {
		return nil, ErrMissingSections
	}

	if err := validate(root); err != nil {
		return nil, err
	}

	f := &File{
		Common:     common,
		Registries: make(map[string]*yaml.Node),
	}
	for i := 0; i+1 < len(registries.Content); i += 2 {
		f.Registries[registries.Content[i].Value] = resolve(registries.Content[i+1])
	}
	return f, nil
}

// Names returns the registry keys in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Registries))
	for name := range f.Registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns the effective configuration of one registry: the common
// mapping deep-merged with the registry's overrides.
func (f *File) Merge(registry string) (*yaml.Node, error) {
	override, ok := f.Registries[registry]
	if !ok || override == nil || override.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q", ErrRegistryNotFound, registry)
	}
	return DeepMerge(f.Common, override), nil
}

// WriteYAML writes n to path in block style, keeping key order.
func WriteYAML(path string, n *yaml.Node) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(blockStyle(clone(n))); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return enc.Close()
}
