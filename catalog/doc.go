// Package catalog maintains the searchable parts catalog.
//
// The Store persists parts through a storage.CatalogRepository and keeps an
// immutable in-memory Snapshot with derived indices: token posting lists for
// lexical lookup, material grade and grade-family maps, and the embedded
// vector set for similarity scans. Loads replace the full catalog and publish
// a new snapshot atomically, so concurrent searches always see a consistent
// view.
//
// The package also owns material grade normalization, form synonym folding,
// and the alternative-material substitution table.
package catalog
