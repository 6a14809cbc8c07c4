package proxyconfig

import "go.yaml.in/yaml/v3"

// DeepMerge merges override into base and returns a new tree. Mappings are
// merged key by key, recursively; base keys keep their position and new keys
// are appended in override order. Any other pairing returns override.
func DeepMerge(base, override *yaml.Node) *yaml.Node {
	base, override = resolve(base), resolve(override)
	if base == nil || override == nil ||
		base.Kind != yaml.MappingNode || override.Kind != yaml.MappingNode {
		return clone(override)
	}

	merged := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	index := make(map[string]int)
	for i := 0; i+1 < len(base.Content); i += 2 {
		index[base.Content[i].Value] = len(merged.Content) + 1
		merged.Content = append(merged.Content, clone(base.Content[i]), clone(base.Content[i+1]))
	}

	for i := 0; i+1 < len(override.Content); i += 2 {
		key, val := override.Content[i], override.Content[i+1]
		if at, ok := index[key.Value]; ok {
			merged.Content[at] = DeepMerge(merged.Content[at], val)
			continue
		}
		index[key.Value] = len(merged.Content) + 1
		merged.Content = append(merged.Content, clone(key), clone(val))
	}
	return merged
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// clone deep-copies n with aliases expanded and anchors dropped.
func clone(n *yaml.Node) *yaml.Node {
	n = resolve(n)
	if n == nil {
		return nil
	}
	c := *n
	c.Anchor = ""
	c.Content = nil
	for _, ch := range n.Content {
		c.Content = append(c.Content, clone(ch))
	}
	return &c
}

func blockStyle(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style &^= yaml.FlowStyle
	}
	for _, ch := range n.Content {
		blockStyle(ch)
	}
	return n
}
