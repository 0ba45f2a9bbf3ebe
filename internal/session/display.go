// ABOUTME: Table rendering for books, users, and borrow records
// ABOUTME: Uses tabwriter with colored headers

package session

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/2389/bookwarden/internal/catalog"
	"github.com/2389/bookwarden/internal/ledger"
)

// parseYear parses a publication year entered at the prompt.
func parseYear(raw string) (int, error) {
	return strconv.Atoi(raw)
}

// printBook renders a single book as a label/value block.
func (s *Session) printBook(b catalog.Book) {
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(s.out)
	cyan.Fprintf(s.out, "Book #%d\n", b.ID)
	fmt.Fprintf(s.out, "  Title:  %s\n", b.Title)
	fmt.Fprintf(s.out, "  Author: %s\n", b.Author)
	fmt.Fprintf(s.out, "  ISBN:   %s\n", b.ISBN)
	fmt.Fprintf(s.out, "  Year:   %d\n", b.Year)
	fmt.Fprintf(s.out, "  Status: %s\n", bookStatus(b))
}

// printBooks renders a book list as a table under a heading.
func (s *Session) printBooks(heading string, books []catalog.Book) {
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(s.out)
	cyan.Fprintf(s.out, "%s (%d)\n", heading, len(books))
	if len(books) == 0 {
		fmt.Fprintln(s.out, "  (none)")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tAUTHOR\tISBN\tYEAR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%d\t%s\n", b.ID, b.Title, b.Author, b.ISBN, b.Year, bookStatus(b))
	}
	w.Flush()
}

// printRecords renders a user's borrow ledger as a table.
func (s *Session) printRecords(userID int, records []ledger.Record) {
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(s.out)
	cyan.Fprintf(s.out, "Borrowed books for user %d (%d)\n", userID, len(records))
	if len(records) == 0 {
		fmt.Fprintln(s.out, "  (none)")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "  BOOK ID\tTITLE\tAUTHOR\tISBN\tYEAR")
	for _, r := range records {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%d\n", r.BookID, r.Title, r.Author, r.ISBN, r.Year)
	}
	w.Flush()
}

// printUsers renders the roster as a table. Passwords are not shown.
func (s *Session) printUsers() {
	cyan := color.New(color.FgCyan)
	users := s.users.Users()

	fmt.Fprintln(s.out)
	cyan.Fprintf(s.out, "Users (%d)\n", len(users))
	if len(users) == 0 {
		fmt.Fprintln(s.out, "  (none)")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tUSERNAME\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, u.Role.String())
	}
	w.Flush()
}

func bookStatus(b catalog.Book) string {
	if b.Available {
		return "available"
	}
	return fmt.Sprintf("borrowed by %d", b.BorrowerID)
}
