// Package dom builds HTML subtrees from declarative node specs and owns the
// single render target the listing is written into.
//
// A Spec describes a node (tag, attributes, text, raw inner HTML, children).
// Materialize is the only place that turns specs into *html.Node values, so
// entry builders can be tested by asserting on the Spec tree alone. The
// Container wraps the target element: it clears, appends and sets text
// content, and guards against overlapping render cycles.
package dom
