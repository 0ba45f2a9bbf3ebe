// ABOUTME: Role-specific menu loops and their actions
// ABOUTME: Admin manages the catalog and roster; users borrow and return

package session

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/2389/bookwarden/internal/catalog"
	"github.com/2389/bookwarden/internal/roster"
)

// adminMenu renders the admin menu and runs one chosen action.
func (s *Session) adminMenu(user *roster.User) outcome {
	if s.eof {
		return outcomeExit
	}

	cyan := color.New(color.FgCyan)

	fmt.Fprintln(s.out)
	cyan.Fprintf(s.out, "  admin menu — %s\n", user.Name)
	cyan.Fprintln(s.out, "  ----------------------------")
	fmt.Fprintln(s.out, "  1.  Add book")
	fmt.Fprintln(s.out, "  2.  Search book")
	fmt.Fprintln(s.out, "  3.  Update book")
	fmt.Fprintln(s.out, "  4.  Delete book")
	fmt.Fprintln(s.out, "  5.  List all books")
	fmt.Fprintln(s.out, "  6.  List available books")
	fmt.Fprintln(s.out, "  7.  List borrowed books")
	fmt.Fprintln(s.out, "  8.  Add user")
	fmt.Fprintln(s.out, "  9.  List users")
	fmt.Fprintln(s.out, "  10. View user's borrowed books")
	fmt.Fprintln(s.out, "  11. Logout")
	fmt.Fprintln(s.out, "  12. Exit")

	choice, ok := s.promptInt("Enter your choice: ")
	if !ok {
		if s.eof {
			return outcomeExit
		}
		s.invalid("a number is required")
		return outcomeStay
	}

	switch choice {
	case 1:
		s.addBook()
	case 2:
		s.searchBooks()
	case 3:
		s.updateBook()
	case 4:
		s.deleteBook()
	case 5:
		s.printBooks("All books", s.books.Books())
	case 6:
		s.printBooks("Available books", s.books.Available())
	case 7:
		s.printBooks("Borrowed books", s.books.Borrowed())
	case 8:
		s.addUser()
	case 9:
		s.printUsers()
	case 10:
		s.viewUserRecords(user)
	case 11:
		return outcomeLogout
	case 12:
		return outcomeExit
	default:
		s.invalid("unknown choice")
	}
	return outcomeStay
}

// userMenu renders the regular user menu and runs one chosen action.
func (s *Session) userMenu(user *roster.User) outcome {
	if s.eof {
		return outcomeExit
	}

	cyan := color.New(color.FgCyan)

	fmt.Fprintln(s.out)
	cyan.Fprintf(s.out, "  user menu — %s\n", user.Name)
	cyan.Fprintln(s.out, "  ----------------------------")
	fmt.Fprintln(s.out, "  1. Search book")
	fmt.Fprintln(s.out, "  2. List all books")
	fmt.Fprintln(s.out, "  3. List available books")
	fmt.Fprintln(s.out, "  4. Borrow book")
	fmt.Fprintln(s.out, "  5. Return book")
	fmt.Fprintln(s.out, "  6. My borrowed books")
	fmt.Fprintln(s.out, "  7. Logout")
	fmt.Fprintln(s.out, "  8. Exit")

	choice, ok := s.promptInt("Enter your choice: ")
	if !ok {
		if s.eof {
			return outcomeExit
		}
		s.invalid("a number is required")
		return outcomeStay
	}

	switch choice {
	case 1:
		s.searchBooks()
	case 2:
		s.printBooks("All books", s.books.Books())
	case 3:
		s.printBooks("Available books", s.books.Available())
	case 4:
		s.borrowBook(user)
	case 5:
		s.returnBook(user)
	case 6:
		s.printRecords(user.ID, s.loadRecords(user.ID))
	case 7:
		return outcomeLogout
	case 8:
		return outcomeExit
	default:
		s.invalid("unknown choice")
	}
	return outcomeStay
}

func (s *Session) addBook() {
	title, ok := s.promptString("Title: ")
	if !ok {
		s.invalid("title is required")
		return
	}
	author, ok := s.promptString("Author: ")
	if !ok {
		s.invalid("author is required")
		return
	}
	isbn, ok := s.promptString("ISBN: ")
	if !ok {
		s.invalid("ISBN is required")
		return
	}
	year, ok := s.promptInt("Year: ")
	if !ok {
		s.invalid("year must be a number")
		return
	}

	id, err := s.books.Add(title, author, isbn, year)
	if err != nil {
		s.reportError(err)
		return
	}
	s.saveCatalog()
	color.New(color.FgGreen).Fprintf(s.out, "Book added with id %d\n", id)
}

// searchBooks offers the four lookup modes and prints the first match.
func (s *Session) searchBooks() {
	fmt.Fprintln(s.out, "  1. By id")
	fmt.Fprintln(s.out, "  2. By title")
	fmt.Fprintln(s.out, "  3. By author")
	fmt.Fprintln(s.out, "  4. By ISBN")

	choice, ok := s.promptInt("Search by: ")
	if !ok {
		s.invalid("a number is required")
		return
	}

	var book *catalog.Book
	switch choice {
	case 1:
		id, ok := s.promptInt("Book id: ")
		if !ok {
			s.invalid("a number is required")
			return
		}
		book = s.books.FindByID(id)
	case 2:
		title, ok := s.promptString("Title: ")
		if !ok {
			s.invalid("title is required")
			return
		}
		book = s.books.FindByTitle(title)
	case 3:
		author, ok := s.promptString("Author: ")
		if !ok {
			s.invalid("author is required")
			return
		}
		book = s.books.FindByAuthor(author)
	case 4:
		isbn, ok := s.promptString("ISBN: ")
		if !ok {
			s.invalid("ISBN is required")
			return
		}
		book = s.books.FindByISBN(isbn)
	default:
		s.invalid("unknown choice")
		return
	}

	if book == nil {
		color.New(color.FgYellow).Fprintln(s.out, "No matching book found")
		return
	}
	s.printBook(*book)
}

// updateBook edits a book field by field; empty input keeps the
// current value.
func (s *Session) updateBook() {
	id, ok := s.promptInt("Book id: ")
	if !ok {
		s.invalid("a number is required")
		return
	}
	book := s.books.FindByID(id)
	if book == nil {
		color.New(color.FgYellow).Fprintln(s.out, "No matching book found")
		return
	}
	s.printBook(*book)
	fmt.Fprintln(s.out, "Press Enter to keep the current value.")

	title := s.promptOrKeep(fmt.Sprintf("Title [%s]: ", book.Title), book.Title)
	author := s.promptOrKeep(fmt.Sprintf("Author [%s]: ", book.Author), book.Author)
	isbn := s.promptOrKeep(fmt.Sprintf("ISBN [%s]: ", book.ISBN), book.ISBN)

	year := book.Year
	if raw := s.promptOrKeep(fmt.Sprintf("Year [%d]: ", book.Year), ""); raw != "" {
		parsed, err := parseYear(raw)
		if err != nil {
			s.invalid("year must be a number")
			return
		}
		year = parsed
	}

	if err := s.books.Update(id, title, author, isbn, year); err != nil {
		s.reportError(err)
		return
	}
	s.saveCatalog()
	color.New(color.FgGreen).Fprintln(s.out, "Book updated")
}

// deleteBook removes a book after confirmation. Deleting a borrowed
// book is allowed but warned about, since the borrower's ledger entry
// stays behind.
func (s *Session) deleteBook() {
	id, ok := s.promptInt("Book id: ")
	if !ok {
		s.invalid("a number is required")
		return
	}
	book := s.books.FindByID(id)
	if book == nil {
		color.New(color.FgYellow).Fprintln(s.out, "No matching book found")
		return
	}
	s.printBook(*book)

	if !book.Available {
		color.New(color.FgYellow).Fprintf(s.out, "Warning: this book is currently borrowed by user %d\n", book.BorrowerID)
	}
	if !s.confirm("Delete this book? (y/n): ") {
		fmt.Fprintln(s.out, "Cancelled")
		return
	}

	if !book.Available {
		s.logger.Warn("deleting borrowed book", "book_id", id, "borrower_id", book.BorrowerID)
	}
	s.books.Remove(id)
	s.saveCatalog()
	color.New(color.FgGreen).Fprintln(s.out, "Book deleted")
}

func (s *Session) addUser() {
	username, ok := s.promptString("Username: ")
	if !ok {
		s.invalid("username is required")
		return
	}
	name, ok := s.promptString("Full name: ")
	if !ok {
		s.invalid("name is required")
		return
	}
	password, ok := s.promptString("Password: ")
	if !ok {
		s.invalid("password is required")
		return
	}
	role := roster.RoleUser
	if s.confirm("Admin role? (y/n): ") {
		role = roster.RoleAdmin
	}

	id, err := s.users.Add(username, name, password, role)
	if err != nil {
		s.reportError(err)
		return
	}
	s.saveRoster()
	color.New(color.FgGreen).Fprintf(s.out, "User added with id %d\n", id)
}

// viewUserRecords shows any user's borrowed books; 0 means the admin's own.
func (s *Session) viewUserRecords(admin *roster.User) {
	id, ok := s.promptInt("User id (0 for your own): ")
	if !ok {
		s.invalid("a number is required")
		return
	}
	if id == 0 {
		id = admin.ID
	}
	s.printRecords(id, s.loadRecords(id))
}

func (s *Session) borrowBook(user *roster.User) {
	s.printBooks("Available books", s.books.Available())

	id, ok := s.promptInt("Book id to borrow: ")
	if !ok {
		s.invalid("a number is required")
		return
	}
	if err := s.loans.Borrow(id, user.ID); err != nil {
		s.reportError(err)
		return
	}
	s.saveCatalog()
	color.New(color.FgGreen).Fprintln(s.out, "Book borrowed")
}

func (s *Session) returnBook(user *roster.User) {
	s.printRecords(user.ID, s.loadRecords(user.ID))

	id, ok := s.promptInt("Book id to return: ")
	if !ok {
		s.invalid("a number is required")
		return
	}
	if err := s.loans.Return(id, user.ID); err != nil {
		s.reportError(err)
		return
	}
	s.saveCatalog()
	color.New(color.FgGreen).Fprintln(s.out, "Book returned")
}
