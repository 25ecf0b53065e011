// Package content reads asset references from content tables.
//
// Each content kind (blog posts, portfolio items, services, testimonials or a
// custom name=table.column mapping) contributes the values of its asset column,
// normalized to bucket-relative paths. Null, empty and foreign values are dropped.
//
// The Collector implements reconcile.ReferenceCollector.
package content
