// ABOUTME: Catalog store owning the ordered collection of book records
// ABOUTME: Provides add/remove/update, lookups, and monotonic id assignment

package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/bookwarden/internal/validate"
)

// ErrNotFound is returned when no book matches the requested key.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when an ISBN already belongs to another book.
var ErrDuplicateISBN = errors.New("isbn already exists")

// ErrInvalidInput is returned when a book field fails validation.
var ErrInvalidInput = errors.New("invalid book field")

// Book is a single catalog record. Available and BorrowerID move together:
// a book is available exactly when its BorrowerID is zero.
type Book struct {
	ID         int
	Title      string
	Author     string
	ISBN       string
	Year       int
	Available  bool
	BorrowerID int
}

// Catalog holds the ordered book collection and its backing file path.
// Insertion order is preserved across mutations and reloads.
type Catalog struct {
	path   string
	logger *slog.Logger
	books  []Book
}

// New creates an empty catalog backed by the file at path. Call Load to
// hydrate it from disk.
func New(path string, logger *slog.Logger) *Catalog {
	return &Catalog{
		path:   path,
		logger: logger,
	}
}

// Add validates the fields, rejects duplicate ISBNs, and appends a new
// available book with the next free id. Returns the assigned id.
func (c *Catalog) Add(title, author, isbn string, year int) (int, error) {
	if !validate.String(title, validate.MaxTitleLen) {
		return 0, fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if !validate.String(author, validate.MaxAuthorLen) {
		return 0, fmt.Errorf("%w: author", ErrInvalidInput)
	}
	if !validate.String(isbn, validate.MaxISBNLen) {
		return 0, fmt.Errorf("%w: isbn", ErrInvalidInput)
	}
	if !validate.Year(year) {
		return 0, fmt.Errorf("%w: year", ErrInvalidInput)
	}

	if c.FindByISBN(isbn) != nil {
		return 0, ErrDuplicateISBN
	}

	book := Book{
		ID:        c.NextID(),
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Year:      year,
		Available: true,
	}
	c.books = append(c.books, book)

	c.logger.Debug("added book", "id", book.ID, "isbn", book.ISBN)
	return book.ID, nil
}

// Remove deletes the book with the given id, shifting later entries left
// so relative order is preserved. Returns whether a book was removed.
func (c *Catalog) Remove(id int) bool {
	for i := range c.books {
		if c.books[i].ID == id {
			c.books = append(c.books[:i], c.books[i+1:]...)
			c.logger.Debug("removed book", "id", id)
			return true
		}
	}
	return false
}

// FindByID returns the book with the given id, or nil. The pointer is
// valid until the next mutation of the catalog.
func (c *Catalog) FindByID(id int) *Book {
	for i := range c.books {
		if c.books[i].ID == id {
			return &c.books[i]
		}
	}
	return nil
}

// FindByTitle returns the first book with an exactly matching title, or nil.
func (c *Catalog) FindByTitle(title string) *Book {
	for i := range c.books {
		if c.books[i].Title == title {
			return &c.books[i]
		}
	}
	return nil
}

// FindByAuthor returns the first book with an exactly matching author, or nil.
func (c *Catalog) FindByAuthor(author string) *Book {
	for i := range c.books {
		if c.books[i].Author == author {
			return &c.books[i]
		}
	}
	return nil
}

// FindByISBN returns the book with an exactly matching ISBN, or nil.
func (c *Catalog) FindByISBN(isbn string) *Book {
	for i := range c.books {
		if c.books[i].ISBN == isbn {
			return &c.books[i]
		}
	}
	return nil
}

// Update replaces the fields of the book with the given id. The book's own
// unchanged ISBN is allowed; an ISBN held by a different book is rejected.
func (c *Catalog) Update(id int, title, author, isbn string, year int) error {
	book := c.FindByID(id)
	if book == nil {
		return ErrNotFound
	}

	if !validate.String(title, validate.MaxTitleLen) {
		return fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if !validate.String(author, validate.MaxAuthorLen) {
		return fmt.Errorf("%w: author", ErrInvalidInput)
	}
	if !validate.String(isbn, validate.MaxISBNLen) {
		return fmt.Errorf("%w: isbn", ErrInvalidInput)
	}
	if !validate.Year(year) {
		return fmt.Errorf("%w: year", ErrInvalidInput)
	}

	if existing := c.FindByISBN(isbn); existing != nil && existing.ID != id {
		return ErrDuplicateISBN
	}

	book.Title = title
	book.Author = author
	book.ISBN = isbn
	book.Year = year

	c.logger.Debug("updated book", "id", id)
	return nil
}

// NextID returns 1 for an empty catalog, otherwise one more than the
// highest id ever still present. Ids stay unique across deletions.
func (c *Catalog) NextID() int {
	maxID := 0
	for i := range c.books {
		if c.books[i].ID > maxID {
			maxID = c.books[i].ID
		}
	}
	return maxID + 1
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Books returns a copy of all books in insertion order.
func (c *Catalog) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// Available returns the books currently available for borrowing, in order.
func (c *Catalog) Available() []Book {
	var out []Book
	for i := range c.books {
		if c.books[i].Available {
			out = append(out, c.books[i])
		}
	}
	return out
}

// Borrowed returns the books currently on loan, in order.
func (c *Catalog) Borrowed() []Book {
	var out []Book
	for i := range c.books {
		if !c.books[i].Available {
			out = append(out, c.books[i])
		}
	}
	return out
}
