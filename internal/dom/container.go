package dom

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ListingID is the element id of the listing render target.
const ListingID = "registryListing"

// Ticket identifies one render cycle started with Begin.
type Ticket uint64

// Container is the render target: one element whose children are replaced
// on every render cycle. Mutations are serialized; overlapping cycles are
// resolved by Begin/Commit.
type Container struct {
	mu   sync.Mutex
	root *html.Node

	begun    atomic.Uint64
	commitMu sync.Mutex
}

// NewContainer creates a detached <div> with the given id.
func NewContainer(id string) *Container {
	return Attach(&html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: id}},
	})
}

// Attach wraps an existing element, typically one located with Find inside a
// parsed page.
func Attach(n *html.Node) *Container {
	return &Container{root: n}
}

// Node returns the underlying element.
func (c *Container) Node() *html.Node {
	return c.root
}

// ID returns the element's id attribute.
func (c *Container) ID() string {
	return attrValue(c.root, "id")
}

// Clear removes every child of the target.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Container) clearLocked() {
	for ch := c.root.FirstChild; ch != nil; {
		next := ch.NextSibling
		c.root.RemoveChild(ch)
		ch = next
	}
}

// Append adds nodes as the last children of the target, in order.
func (c *Container) Append(nodes ...*html.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		c.root.AppendChild(n)
	}
}

// SetTextContent replaces all children with a single text node.
func (c *Container) SetTextContent(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	if text != "" {
		c.root.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Children returns a snapshot of the target's direct children.
func (c *Container) Children() []*html.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*html.Node
	for ch := c.root.FirstChild; ch != nil; ch = ch.NextSibling {
		out = append(out, ch)
	}
	return out
}

// TextContent returns the concatenated text of all descendant text nodes.
func (c *Container) TextContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TextContent(c.root)
}

// InnerHTML serializes the target's children.
func (c *Container) InnerHTML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var buf bytes.Buffer
	for ch := c.root.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := html.Render(&buf, ch); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// OuterHTML serializes the target element itself.
func (c *Container) OuterHTML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var buf bytes.Buffer
	if err := html.Render(&buf, c.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Begin starts a render cycle and returns its ticket. Starting a cycle
// supersedes every cycle begun before it.
func (c *Container) Begin() Ticket {
	return Ticket(c.begun.Add(1))
}

// Commit runs fn if t is still the most recently begun cycle and reports
// whether it ran. Completions of superseded cycles are dropped, so the last
// cycle to start wins regardless of which fetch finishes last.
func (c *Container) Commit(t Ticket, fn func()) bool {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()
	if uint64(t) != c.begun.Load() {
		return false
	}
	fn()
	return true
}

// Find returns the first element under root (inclusive) whose id equals id.
func Find(root *html.Node, id string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && attrValue(root, "id") == id {
		return root
	}
	for ch := root.FirstChild; ch != nil; ch = ch.NextSibling {
		if n := Find(ch, id); n != nil {
			return n
		}
	}
	return nil
}

// TextContent returns the concatenated text of n's descendant text nodes.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return sb.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
