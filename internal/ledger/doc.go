// Package ledger implements the per-user borrow record files.
//
// # Overview
//
// Each user's borrowed books are recorded in their own binary file in
// the data directory, named user_<id>_books.dat. A record is a
// snapshot of the book at borrow time (id, title, author, ISBN, year),
// so it stays readable even if the book is later edited or deleted.
//
// # File Format
//
// Records are fixed-width little-endian, appended on borrow. Removal
// rewrites the file without the matching record.
//
// # Semantics
//
//   - Loading a user with no ledger file yields an empty record list
//   - Removing from an absent file is a no-op success
//   - A truncated record is an error; the file is not silently repaired
package ledger
