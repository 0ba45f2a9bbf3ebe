// Package catalog implements the book catalog store.
//
// # Overview
//
// The catalog holds every book the library owns, together with its
// availability state. Books live in memory during a session and are
// persisted to a single binary file on save.
//
// # Book Identity
//
// Books carry a numeric id assigned on add:
//
//   - Ids start at 1 and are always one greater than the current maximum
//   - Deleting a book can therefore free its id for reuse
//   - ISBNs are unique across the catalog; titles and authors are not
//
// # Lookups
//
// FindByID, FindByTitle, FindByAuthor, and FindByISBN return the first
// match in insertion order, or nil when nothing matches. String lookups
// are exact and case-sensitive.
//
// # File Format
//
// Save writes a fixed-layout little-endian binary file:
//
//	uint32        book count
//	repeated      fixed-width book records
//
// Each record holds the id, NUL-padded title, author, and ISBN fields,
// the year, an availability flag, and the borrower id. Load rejects
// files whose count field is implausibly large or whose records are
// truncated.
//
// # Text Import
//
// ImportText seeds the catalog from a semicolon-separated text file:
//
//	id;title;author
//
// Imported books get a synthesized ISBN from the id, year 0, and are
// marked available. Malformed lines and ids already present in the
// catalog are skipped.
//
// # Usage
//
//	books := catalog.New("books.dat", logger)
//	if err := books.Load(); err != nil { ... }
//	id, err := books.Add("Title", "Author", "978-...", 2015)
package catalog
