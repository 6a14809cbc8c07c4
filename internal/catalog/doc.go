// Package catalog fetches the registry-proxy catalog and validates its shape.
//
// Fetch issues exactly one GET to the joined catalog URL and returns the
// decoded JSON untyped. Parse is the boundary check: it turns that value into
// a Listing, distinguishing a list of entries from a document that is not a
// list at all. Failures are reported as *TransportError or *DecodeError.
package catalog
