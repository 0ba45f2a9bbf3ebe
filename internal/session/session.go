// ABOUTME: Interactive terminal session driving the catalog and roster
// ABOUTME: Login/register screen, then role-specific menu loops

package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/2389/bookwarden/internal/borrow"
	"github.com/2389/bookwarden/internal/catalog"
	"github.com/2389/bookwarden/internal/ledger"
	"github.com/2389/bookwarden/internal/roster"
)

// outcome tells the outer loop what ended a menu iteration.
type outcome int

const (
	outcomeStay outcome = iota
	outcomeLogout
	outcomeExit
)

// Session owns one interactive run of the application. All state
// mutations flow through the stores and the borrowing service; the
// session itself only parses input and renders results.
type Session struct {
	books   *catalog.Catalog
	users   *roster.Roster
	records *ledger.Ledger
	loans   *borrow.Service
	logger  *slog.Logger

	in  *bufio.Reader
	out io.Writer

	// passwordFd is the terminal fd for no-echo password input, or -1
	// when input is not a terminal.
	passwordFd int

	// eof is set once input is exhausted; every menu treats it as exit.
	eof bool
}

// New creates a session reading commands from in and rendering to out.
func New(in io.Reader, out io.Writer, books *catalog.Catalog, users *roster.Roster, records *ledger.Ledger, loans *borrow.Service, logger *slog.Logger) *Session {
	passwordFd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		passwordFd = int(f.Fd())
	}

	return &Session{
		books:      books,
		users:      users,
		records:    records,
		loans:      loans,
		logger:     logger,
		in:         bufio.NewReader(in),
		out:        out,
		passwordFd: passwordFd,
	}
}

// Run drives the login screen and menu loops until the operator exits.
// Both stores are persisted on exit.
func (s *Session) Run() error {
	for {
		user, ok := s.authMenu()
		if !ok {
			break
		}

		log := s.logger.With("session_id", uuid.NewString(), "user_id", user.ID, "username", user.Username)
		log.Info("session started", "role", user.Role.String())

		if s.menuLoop(user) == outcomeExit {
			log.Info("session ended")
			break
		}
		log.Info("session ended")
	}

	fmt.Fprintln(s.out, "Saving data and exiting...")
	if err := s.books.Save(); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	if err := s.users.Save(); err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}
	fmt.Fprintln(s.out, "Thank you for using bookwarden!")
	return nil
}

// menuLoop dispatches to the role-specific menu until logout or exit.
func (s *Session) menuLoop(user *roster.User) outcome {
	for {
		var out outcome
		if user.Role == roster.RoleAdmin {
			out = s.adminMenu(user)
		} else {
			out = s.userMenu(user)
		}
		if out != outcomeStay {
			return out
		}
	}
}

// authMenu runs the login/register screen. It returns the logged-in
// identity, or ok=false when the operator chose to exit.
func (s *Session) authMenu() (*roster.User, bool) {
	cyan := color.New(color.FgCyan)

	for {
		if s.eof {
			return nil, false
		}

		fmt.Fprintln(s.out)
		cyan.Fprintln(s.out, "  bookwarden — login")
		cyan.Fprintln(s.out, "  ------------------")
		fmt.Fprintln(s.out, "  1. Login")
		fmt.Fprintln(s.out, "  2. Register")
		fmt.Fprintln(s.out, "  3. Admin Login")
		fmt.Fprintln(s.out, "  4. Exit")

		choice, ok := s.promptInt("Enter your choice: ")
		if !ok {
			if s.eof {
				return nil, false
			}
			s.invalid("a number is required")
			continue
		}

		switch choice {
		case 1:
			if user := s.loginScreen(false); user != nil {
				return user, true
			}
		case 2:
			s.registerScreen()
		case 3:
			if user := s.loginScreen(true); user != nil {
				return user, true
			}
		case 4:
			return nil, false
		default:
			s.invalid("unknown choice")
		}
	}
}

// loginScreen collects credentials and authenticates. When adminOnly is
// set, a non-admin identity is rejected after authentication.
func (s *Session) loginScreen(adminOnly bool) *roster.User {
	username, ok := s.promptString("Username: ")
	if !ok {
		s.invalid("username is required")
		return nil
	}
	password, ok := s.promptPassword("Password: ")
	if !ok {
		s.invalid("password is required")
		return nil
	}

	user, err := s.users.Login(username, password)
	if err != nil {
		color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
		return nil
	}
	if adminOnly && user.Role != roster.RoleAdmin {
		color.New(color.FgRed).Fprintln(s.out, "Access denied: not an admin account")
		return nil
	}

	color.New(color.FgGreen).Fprintf(s.out, "Welcome %s!\n", user.Name)
	return user
}

// registerScreen collects a new user's details and persists the roster.
func (s *Session) registerScreen() {
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
	password, ok := s.promptPassword("Password: ")
	if !ok {
		s.invalid("password is required")
		return
	}

	id, err := s.users.Register(username, name, password)
	if err != nil {
		color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.saveRoster()

	color.New(color.FgGreen).Fprintf(s.out, "Registration successful! Your user id is %d. Please login to continue.\n", id)
	s.logger.Info("registered user", "user_id", id, "username", username)
}

// promptString reads one trimmed line. ok is false on empty input or
// EOF; EOF additionally latches s.eof so the menu loops can exit
// instead of re-prompting a drained reader forever.
func (s *Session) promptString(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		s.eof = true
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// promptOrKeep reads one line, returning current on empty input or EOF.
func (s *Session) promptOrKeep(label, current string) string {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		s.eof = true
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// promptInt reads one line and parses it as an integer.
func (s *Session) promptInt(label string) (int, bool) {
	raw, ok := s.promptString(label)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// promptPassword reads a password without echo when input is a
// terminal, falling back to a plain line read otherwise.
func (s *Session) promptPassword(label string) (string, bool) {
	if s.passwordFd < 0 {
		return s.promptString(label)
	}

	fmt.Fprint(s.out, label)
	raw, err := term.ReadPassword(s.passwordFd)
	fmt.Fprintln(s.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.eof = true
		}
		return "", false
	}
	if len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// confirm asks a yes/no question and reports whether the answer was yes.
func (s *Session) confirm(label string) bool {
	answer, ok := s.promptString(label)
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (s *Session) invalid(msg string) {
	color.New(color.FgYellow).Fprintf(s.out, "Invalid input: %s\n", msg)
}

// reportError renders an operation failure and keeps the session going.
func (s *Session) reportError(err error) {
	color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
	if !errors.Is(err, catalog.ErrNotFound) {
		s.logger.Debug("operation failed", "error", err)
	}
}

// saveCatalog persists the catalog, reporting but not escalating failure.
func (s *Session) saveCatalog() {
	if err := s.books.Save(); err != nil {
		s.logger.Error("saving catalog", "error", err)
		color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
	}
}

// saveRoster persists the roster, reporting but not escalating failure.
func (s *Session) saveRoster() {
	if err := s.users.Save(); err != nil {
		s.logger.Error("saving roster", "error", err)
		color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
	}
}

// loadRecords fetches a user's ledger records for display.
func (s *Session) loadRecords(userID int) []ledger.Record {
	records, err := s.records.LoadAll(userID)
	if err != nil {
		s.reportError(err)
		return nil
	}
	return records
}
