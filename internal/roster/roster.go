// ABOUTME: Roster store owning the registered users and their roles
// ABOUTME: Text-file persistence, one pipe-delimited record per line

package roster

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/2389/bookwarden/internal/validate"
)

// ErrNotFound is returned when no user matches the requested key.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrInvalidInput is returned when a user field fails validation.
var ErrInvalidInput = errors.New("invalid user field")

// Role distinguishes regular users from administrators. The numeric
// values are part of the on-disk format.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// User is a single roster record. Passwords are stored and compared as
// plain values.
type User struct {
	ID       int
	Username string
	Name     string
	Password string
	Role     Role
}

// Roster holds the ordered user collection and its backing file path.
type Roster struct {
	path          string
	logger        *slog.Logger
	adminUsername string
	adminPassword string
	users         []User
}

// New creates an empty roster backed by the file at path, with the
// built-in admin credentials. Call Load to hydrate it from disk.
func New(path string, logger *slog.Logger) *Roster {
	return &Roster{
		path:          path,
		logger:        logger,
		adminUsername: DefaultAdminUsername,
		adminPassword: DefaultAdminPassword,
	}
}

// Add validates the fields, rejects duplicate usernames, and appends a
// new user with the next free id. Returns the assigned id.
func (r *Roster) Add(username, name, password string, role Role) (int, error) {
	if !validate.String(username, validate.MaxUsernameLen) {
		return 0, fmt.Errorf("%w: username", ErrInvalidInput)
	}
	if !validate.String(name, validate.MaxNameLen) {
		return 0, fmt.Errorf("%w: name", ErrInvalidInput)
	}
	if !validate.String(password, validate.MaxPasswordLen) {
		return 0, fmt.Errorf("%w: password", ErrInvalidInput)
	}

	if r.FindByUsername(username) != nil {
		return 0, ErrDuplicateUsername
	}

	user := User{
		ID:       r.NextID(),
		Username: username,
		Name:     name,
		Password: password,
		Role:     role,
	}
	r.users = append(r.users, user)

	r.logger.Debug("added user", "id", user.ID, "username", user.Username, "role", user.Role)
	return user.ID, nil
}

// FindByID returns the user with the given id, or nil. The pointer is
// valid until the next mutation of the roster.
func (r *Roster) FindByID(id int) *User {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i]
		}
	}
	return nil
}

// FindByUsername returns the user with an exactly matching username, or nil.
func (r *Roster) FindByUsername(username string) *User {
	for i := range r.users {
		if r.users[i].Username == username {
			return &r.users[i]
		}
	}
	return nil
}

// NextID returns 1 for an empty roster, otherwise one more than the
// highest id present.
func (r *Roster) NextID() int {
	maxID := 0
	for i := range r.users {
		if r.users[i].ID > maxID {
			maxID = r.users[i].ID
		}
	}
	return maxID + 1
}

// Len returns the number of registered users.
func (r *Roster) Len() int {
	return len(r.users)
}

// Users returns a copy of all users in insertion order.
func (r *Roster) Users() []User {
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out
}

// Save rewrites the backing file, one id|username|name|password|role
// line per user.
func (r *Roster) Save() error {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("opening roster file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range r.users {
		u := &r.users[i]
		fmt.Fprintf(w, "%d|%s|%s|%s|%d\n", u.ID, u.Username, u.Name, u.Password, u.Role)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing roster file: %w", err)
	}

	r.logger.Debug("saved roster", "path", r.path, "count", len(r.users))
	return nil
}

// Load replaces the in-memory roster with the file contents. A missing
// file leaves the roster empty; malformed lines are skipped.
func (r *Roster) Load() error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.users = nil
			return nil
		}
		return fmt.Errorf("opening roster file: %w", err)
	}
	defer f.Close()

	var users []User
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		user, ok := parseUserLine(line)
		if !ok {
			r.logger.Warn("skipping malformed roster line", "line", line)
			continue
		}
		users = append(users, user)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading roster file: %w", err)
	}

	r.users = users
	r.logger.Debug("loaded roster", "path", r.path, "count", len(r.users))
	return nil
}

// parseUserLine parses one id|username|name|password|role record.
func parseUserLine(line string) (User, bool) {
	parts := strings.SplitN(line, "|", 5)
	if len(parts) != 5 {
		return User{}, false
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return User{}, false
	}
	role, err := strconv.Atoi(parts[4])
	if err != nil {
		return User{}, false
	}

	return User{
		ID:       id,
		Username: parts[1],
		Name:     parts[2],
		Password: parts[3],
		Role:     Role(role),
	}, true
}
