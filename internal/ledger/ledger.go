// ABOUTME: Per-user borrow ledger files recording currently held books
// ABOUTME: Fixed-width binary records, append on borrow, rewrite on return

package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/2389/bookwarden/internal/validate"
)

// Record is a denormalized snapshot of one borrowed book, stored in the
// borrower's ledger file.
type Record struct {
	BookID int
	Title  string
	Author string
	ISBN   string
	Year   int
}

// borrowRecord is the on-disk layout of one record: 226 bytes,
// little-endian, strings NUL-padded to their field width.
type borrowRecord struct {
	BookID uint32
	Title  [validate.MaxTitleLen]byte
	Author [validate.MaxAuthorLen]byte
	ISBN   [validate.MaxISBNLen]byte
	Year   uint16
}

// Ledger manages the per-user record files inside a single directory.
// One file exists per user id; an absent file is an empty ledger.
type Ledger struct {
	dir    string
	logger *slog.Logger
}

// New creates a ledger rooted at dir.
func New(dir string, logger *slog.Logger) *Ledger {
	return &Ledger{
		dir:    dir,
		logger: logger,
	}
}

// fileFor returns the deterministic ledger filename for a user id.
func (l *Ledger) fileFor(userID int) string {
	return filepath.Join(l.dir, fmt.Sprintf("user_%d_books.dat", userID))
}

// Append writes one record to the end of the user's ledger file,
// creating the file if needed.
func (l *Ledger) Append(userID int, rec Record) error {
	f, err := os.OpenFile(l.fileFor(userID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening ledger for user %d: %w", userID, err)
	}
	defer f.Close()

	enc := encodeRecord(&rec)
	if err := binary.Write(f, binary.LittleEndian, &enc); err != nil {
		return fmt.Errorf("appending ledger record: %w", err)
	}

	l.logger.Debug("appended ledger record", "user_id", userID, "book_id", rec.BookID)
	return nil
}

// RemoveByBookID drops every record matching bookID and rewrites the
// user's ledger with the remainder. An absent ledger file is an empty
// ledger, so removal from it succeeds as a no-op.
func (l *Ledger) RemoveByBookID(userID, bookID int) error {
	records, err := l.LoadAll(userID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		if _, statErr := os.Stat(l.fileFor(userID)); os.IsNotExist(statErr) {
			return nil
		}
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.BookID != bookID {
			kept = append(kept, rec)
		}
	}

	f, err := os.Create(l.fileFor(userID))
	if err != nil {
		return fmt.Errorf("rewriting ledger for user %d: %w", userID, err)
	}
	defer f.Close()

	for i := range kept {
		enc := encodeRecord(&kept[i])
		if err := binary.Write(f, binary.LittleEndian, &enc); err != nil {
			return fmt.Errorf("writing ledger record: %w", err)
		}
	}

	l.logger.Debug("removed ledger record", "user_id", userID, "book_id", bookID, "remaining", len(kept))
	return nil
}

// LoadAll returns every record in the user's ledger, in file order. An
// absent file yields an empty slice; a file truncated mid-record is an
// error.
func (l *Ledger) LoadAll(userID int) ([]Record, error) {
	f, err := os.Open(l.fileFor(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger for user %d: %w", userID, err)
	}
	defer f.Close()

	var records []Record
	for {
		var rec borrowRecord
		err := binary.Read(f, binary.LittleEndian, &rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger record %d: %w", len(records), err)
		}
		records = append(records, decodeRecord(&rec))
	}

	return records, nil
}

func encodeRecord(r *Record) borrowRecord {
	var rec borrowRecord
	rec.BookID = uint32(r.BookID)
	packString(rec.Title[:], r.Title)
	packString(rec.Author[:], r.Author)
	packString(rec.ISBN[:], r.ISBN)
	rec.Year = uint16(r.Year)
	return rec
}

func decodeRecord(rec *borrowRecord) Record {
	return Record{
		BookID: int(rec.BookID),
		Title:  unpackString(rec.Title[:]),
		Author: unpackString(rec.Author[:]),
		ISBN:   unpackString(rec.ISBN[:]),
		Year:   int(rec.Year),
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
