// Package borrow coordinates lending between the catalog and the
// per-user ledgers.
//
// # Overview
//
// The Service is the only place that moves a book between available
// and borrowed. It keeps the catalog and the borrower's ledger file
// consistent by ordering the two writes differently per direction:
//
// Borrow marks the book first, then appends the ledger record. If the
// append fails, the book is rolled back to available so the catalog
// never claims a loan the ledger does not know about.
//
// Return removes the ledger record first, then marks the book
// available. If the removal fails, the book stays borrowed, so a
// record is never lost while the catalog says the book came back.
//
// # Errors
//
// State conflicts surface as sentinel errors (ErrAlreadyBorrowed,
// ErrAlreadyAvailable, ErrNotYourBook, ErrInvalidUser) so callers can
// present them distinctly. Unknown books return catalog.ErrNotFound.
package borrow
