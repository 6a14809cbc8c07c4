package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Spec is a declarative description of one node and its subtree.
//
// An empty Tag describes a text node holding Text. For elements, Text is
// appended as a text child, then HTML is parsed as inner markup in the
// element's context (no escaping), then Children are appended in order.
type Spec struct {
	Tag      string
	Attrs    []Attr
	Text     string
	HTML     string
	Children []Spec
}

// Attr returns the value of the named attribute and whether it is set.
func (s Spec) Attr(key string) (string, bool) {
	for _, a := range s.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Materialize creates a fresh node tree for s.
func Materialize(s Spec) (*html.Node, error) {
	if s.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: s.Text}, nil
	}

	tag := strings.ToLower(s.Tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range s.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}

	if s.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: s.Text})
	}

	if s.HTML != "" {
		inner, err := html.ParseFragment(strings.NewReader(s.HTML), n)
		if err != nil {
			return nil, fmt.Errorf("parsing inner HTML of <%s>: %w", tag, err)
		}
		for _, c := range inner {
			n.AppendChild(c)
		}
	}

	for i, child := range s.Children {
		c, err := Materialize(child)
		if err != nil {
			return nil, fmt.Errorf("child %d of <%s>: %w", i, tag, err)
		}
		n.AppendChild(c)
	}

	return n, nil
}
