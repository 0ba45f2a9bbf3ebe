// ABOUTME: Tests for the borrowing state machine transitions
// ABOUTME: Covers the full borrow/return lifecycle and ledger failure paths

package borrow

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/bookwarden/internal/catalog"
	"github.com/2389/bookwarden/internal/ledger"
)

// setupTestService wires a catalog and a real ledger in temp storage.
func setupTestService(t *testing.T) (*Service, *catalog.Catalog, *ledger.Ledger) {
	t.Helper()
	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	books := catalog.New(filepath.Join(tmpDir, "library.dat"), logger)
	l := ledger.New(tmpDir, logger)
	return NewService(books, l, logger), books, l
}

// failingLedger rejects every mutation, for exercising failure paths.
type failingLedger struct {
	err error
}

func (f *failingLedger) Append(userID int, rec ledger.Record) error {
	return f.err
}

func (f *failingLedger) RemoveByBookID(userID, bookID int) error {
	return f.err
}

func TestBorrow(t *testing.T) {
	svc, books, l := setupTestService(t)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)

	require.NoError(t, svc.Borrow(id, 5))

	book := books.FindByID(id)
	assert.False(t, book.Available)
	assert.Equal(t, 5, book.BorrowerID)

	records, err := l.LoadAll(5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, ledger.Record{BookID: id, Title: "Dune", Author: "Herbert", ISBN: "ISBN-1", Year: 1965}, records[0])
}

func TestBorrow_InvalidUser(t *testing.T) {
	svc, books, _ := setupTestService(t)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Borrow(id, 0), ErrInvalidUser)
	assert.ErrorIs(t, svc.Borrow(id, -3), ErrInvalidUser)
	assert.True(t, books.FindByID(id).Available)
}

func TestBorrow_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	assert.ErrorIs(t, svc.Borrow(42, 5), catalog.ErrNotFound)
}

func TestBorrow_AlreadyBorrowed(t *testing.T) {
	svc, books, _ := setupTestService(t)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)
	require.NoError(t, svc.Borrow(id, 5))

	err = svc.Borrow(id, 7)
	assert.ErrorIs(t, err, ErrAlreadyBorrowed)
	assert.Equal(t, 5, books.FindByID(id).BorrowerID, "borrower unchanged after rejected borrow")
}

func TestBorrow_LedgerFailureRollsBack(t *testing.T) {
	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	books := catalog.New(filepath.Join(tmpDir, "library.dat"), logger)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)

	ledgerErr := errors.New("disk full")
	svc := NewService(books, &failingLedger{err: ledgerErr}, logger)

	err = svc.Borrow(id, 5)
	require.ErrorIs(t, err, ledgerErr)

	book := books.FindByID(id)
	assert.True(t, book.Available, "book rolled back to available on ledger failure")
	assert.Equal(t, 0, book.BorrowerID)
}

func TestReturn(t *testing.T) {
	svc, books, l := setupTestService(t)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)
	require.NoError(t, svc.Borrow(id, 5))

	require.NoError(t, svc.Return(id, 5))

	book := books.FindByID(id)
	assert.True(t, book.Available)
	assert.Equal(t, 0, book.BorrowerID)

	records, err := l.LoadAll(5)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReturn_StateConflicts(t *testing.T) {
	svc, books, _ := setupTestService(t)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Return(id, 5), ErrAlreadyAvailable)
	assert.ErrorIs(t, svc.Return(42, 5), catalog.ErrNotFound)
	assert.ErrorIs(t, svc.Return(id, 0), ErrInvalidUser)

	require.NoError(t, svc.Borrow(id, 5))
	err = svc.Return(id, 7)
	assert.ErrorIs(t, err, ErrNotYourBook)

	book := books.FindByID(id)
	assert.False(t, book.Available, "book stays borrowed by the original user")
	assert.Equal(t, 5, book.BorrowerID)
}

func TestReturn_LedgerFailureKeepsBookBorrowed(t *testing.T) {
	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	books := catalog.New(filepath.Join(tmpDir, "library.dat"), logger)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)

	// Borrow through a working ledger, then swap in a failing one
	working := ledger.New(tmpDir, logger)
	require.NoError(t, NewService(books, working, logger).Borrow(id, 5))

	ledgerErr := errors.New("disk full")
	svc := NewService(books, &failingLedger{err: ledgerErr}, logger)

	err = svc.Return(id, 5)
	require.ErrorIs(t, err, ledgerErr)

	book := books.FindByID(id)
	assert.False(t, book.Available, "catalog untouched when the ledger rewrite fails")
	assert.Equal(t, 5, book.BorrowerID)
}

// TestBorrowReturn_Lifecycle walks the full sequence: add, borrow,
// conflicting borrow and return attempts by another user, then return.
func TestBorrowReturn_Lifecycle(t *testing.T) {
	svc, books, l := setupTestService(t)

	id, err := books.Add("Dune", "Herbert", "ISBN-1", 1965)
	require.NoError(t, err)
	require.Equal(t, 1, id)
	require.True(t, books.FindByID(id).Available)

	require.NoError(t, svc.Borrow(id, 5))

	records, err := l.LoadAll(5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].BookID)

	assert.ErrorIs(t, svc.Borrow(id, 7), ErrAlreadyBorrowed)
	assert.ErrorIs(t, svc.Return(id, 7), ErrNotYourBook)

	require.NoError(t, svc.Return(id, 5))

	book := books.FindByID(id)
	assert.True(t, book.Available)
	assert.Equal(t, 0, book.BorrowerID)

	records, err = l.LoadAll(5)
	require.NoError(t, err)
	assert.Empty(t, records)
}
