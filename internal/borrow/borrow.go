// ABOUTME: Borrowing state machine coordinating the catalog and the ledger
// ABOUTME: Borrow rolls back on ledger failure; return mutates the ledger first

package borrow

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/bookwarden/internal/catalog"
	"github.com/2389/bookwarden/internal/ledger"
)

// ErrInvalidUser is returned for non-positive user ids. The synthetic
// admin identity (id 0) cannot borrow.
var ErrInvalidUser = errors.New("invalid user id")

// ErrAlreadyBorrowed is returned when the book is already on loan.
var ErrAlreadyBorrowed = errors.New("book already borrowed")

// ErrAlreadyAvailable is returned when returning a book that is not on loan.
var ErrAlreadyAvailable = errors.New("book already available")

// ErrNotYourBook is returned when the returning user is not the borrower.
var ErrNotYourBook = errors.New("book borrowed by another user")

// BorrowLedger is the slice of the ledger the state machine needs.
// Narrowed to an interface so transition failure paths are testable.
type BorrowLedger interface {
	Append(userID int, rec ledger.Record) error
	RemoveByBookID(userID, bookID int) error
}

// Service performs borrow and return transitions. The ledger is always
// the side mutated first: a book is never left marked borrowed without
// a ledger entry, and never marked available while its entry might
// still exist.
type Service struct {
	books  *catalog.Catalog
	ledger BorrowLedger
	logger *slog.Logger
}

// NewService creates a borrowing state machine over the given catalog
// and ledger.
func NewService(books *catalog.Catalog, l BorrowLedger, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		ledger: l,
		logger: logger,
	}
}

// Borrow marks the book as held by userID and records it in the user's
// ledger. If the ledger write fails the book is rolled back to
// available. The caller persists the catalog on success.
func (s *Service) Borrow(bookID, userID int) error {
	if userID <= 0 {
		return ErrInvalidUser
	}

	book := s.books.FindByID(bookID)
	if book == nil {
		return catalog.ErrNotFound
	}
	if !book.Available {
		return ErrAlreadyBorrowed
	}

	book.Available = false
	book.BorrowerID = userID

	rec := ledger.Record{
		BookID: book.ID,
		Title:  book.Title,
		Author: book.Author,
		ISBN:   book.ISBN,
		Year:   book.Year,
	}
	if err := s.ledger.Append(userID, rec); err != nil {
		book.Available = true
		book.BorrowerID = 0
		return fmt.Errorf("recording borrow in ledger: %w", err)
	}

	s.logger.Debug("borrowed book", "book_id", bookID, "user_id", userID)
	return nil
}

// Return removes the book from the user's ledger and marks it
// available. The ledger removal happens first; if it fails, the book
// stays borrowed. The caller persists the catalog on success.
func (s *Service) Return(bookID, userID int) error {
	if userID <= 0 {
		return ErrInvalidUser
	}

	book := s.books.FindByID(bookID)
	if book == nil {
		return catalog.ErrNotFound
	}
	if book.Available {
		return ErrAlreadyAvailable
	}
	if book.BorrowerID != userID {
		return ErrNotYourBook
	}

	if err := s.ledger.RemoveByBookID(userID, bookID); err != nil {
		return fmt.Errorf("removing borrow from ledger: %w", err)
	}

	book.Available = true
	book.BorrowerID = 0

	s.logger.Debug("returned book", "book_id", bookID, "user_id", userID)
	return nil
}
