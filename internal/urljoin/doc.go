// Package urljoin holds the named link-building policies used by the catalog
// listing. The policies are literal string joins: no separator deduplication,
// no escaping. Callers pick a policy by name so that the differing
// conventions of the two listing variants stay explicit.
package urljoin
