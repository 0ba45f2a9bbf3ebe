// ABOUTME: Binary persistence for the catalog store plus legacy text import
// ABOUTME: Fixed-width little-endian records behind a uint32 count header

package catalog

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/2389/bookwarden/internal/validate"
)

// maxLoadCount guards against reading a garbage count header.
const maxLoadCount = 100000

// bookRecord is the on-disk layout of one book: 231 bytes, little-endian,
// strings NUL-padded to their field width.
type bookRecord struct {
	ID         uint32
	Title      [validate.MaxTitleLen]byte
	Author     [validate.MaxAuthorLen]byte
	ISBN       [validate.MaxISBNLen]byte
	Year       uint16
	Available  uint8
	BorrowerID uint32
}

// Save rewrites the backing file with a count header followed by one
// fixed-width record per book, in catalog order.
func (c *Catalog) Save() error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.books))); err != nil {
		return fmt.Errorf("writing catalog count: %w", err)
	}

	for i := range c.books {
		rec := encodeBook(&c.books[i])
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("writing book record: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing catalog file: %w", err)
	}

	c.logger.Debug("saved catalog", "path", c.path, "count", len(c.books))
	return nil
}

// Load replaces the in-memory catalog with the file contents. A missing
// file leaves the catalog empty and is not an error; a short or corrupt
// file is.
func (c *Catalog) Load() error {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.books = nil
			return nil
		}
		return fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("reading catalog count: %w", err)
	}
	if count > maxLoadCount {
		return fmt.Errorf("catalog count %d exceeds sanity limit", count)
	}

	books := make([]Book, 0, count)
	for i := uint32(0); i < count; i++ {
		var rec bookRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("reading book record %d: %w", i, err)
		}
		books = append(books, decodeBook(&rec))
	}

	c.books = books
	c.logger.Debug("loaded catalog", "path", c.path, "count", len(c.books))
	return nil
}

// ImportText reads the legacy id;title;author format, one book per line.
// Lines with unknown layout and ids already present are skipped. Imported
// books get a generated ISBN-%04d, year 0, and start available. Returns
// the number of books imported.
//
// Generated ISBNs are not checked against the catalog, so an import can
// collide with a hand-entered ISBN of the same ISBN-%04d shape. Only
// Add and Update enforce ISBN uniqueness.
func (c *Catalog) ImportText(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	imported := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\n")
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ";", 3)
		if len(parts) != 3 {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		if c.FindByID(id) != nil {
			continue
		}

		c.books = append(c.books, Book{
			ID:        id,
			Title:     clampString(parts[1], validate.MaxTitleLen),
			Author:    clampString(parts[2], validate.MaxAuthorLen),
			ISBN:      fmt.Sprintf("ISBN-%04d", id),
			Available: true,
		})
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("reading import file: %w", err)
	}

	c.logger.Debug("imported books", "path", path, "count", imported)
	return imported, nil
}

func encodeBook(b *Book) bookRecord {
	var rec bookRecord
	rec.ID = uint32(b.ID)
	packString(rec.Title[:], b.Title)
	packString(rec.Author[:], b.Author)
	packString(rec.ISBN[:], b.ISBN)
	rec.Year = uint16(b.Year)
	if b.Available {
		rec.Available = 1
	}
	rec.BorrowerID = uint32(b.BorrowerID)
	return rec
}

func decodeBook(rec *bookRecord) Book {
	return Book{
		ID:         int(rec.ID),
		Title:      unpackString(rec.Title[:]),
		Author:     unpackString(rec.Author[:]),
		ISBN:       unpackString(rec.ISBN[:]),
		Year:       int(rec.Year),
		Available:  rec.Available != 0,
		BorrowerID: int(rec.BorrowerID),
	}
}

// packString copies s into dst, truncating to leave a trailing NUL.
func packString(dst []byte, s string) {
	n := copy(dst[:len(dst)-1], s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// unpackString returns the bytes before the first NUL as a string.
func unpackString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// clampString truncates s so it fits a fixed-width field with its NUL.
func clampString(s string, max int) string {
	if len(s) >= max {
		return s[:max-1]
	}
	return s
}
