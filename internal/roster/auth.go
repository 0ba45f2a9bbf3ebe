// ABOUTME: Credential lookup and registration on top of the roster store
// ABOUTME: Built-in admin pair yields a synthetic identity with id 0

package roster

import "errors"

// Built-in administrator credentials, checked before any roster lookup.
// Overridable via configuration; the admin identity itself is never
// stored in the roster.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// ErrBadCredentials is returned when a login attempt does not match any
// identity.
var ErrBadCredentials = errors.New("invalid username or password")

// ErrReservedUsername is returned when registration targets the admin
// username.
var ErrReservedUsername = errors.New("username is reserved")

// SetAdminCredentials replaces the built-in admin pair, typically from
// configuration.
func (r *Roster) SetAdminCredentials(username, password string) {
	r.adminUsername = username
	r.adminPassword = password
}

// AdminUsername returns the username the built-in admin identity uses.
func (r *Roster) AdminUsername() string {
	return r.adminUsername
}

// Login checks the built-in admin pair first, returning a synthetic
// non-persisted identity with id 0, then falls back to a roster lookup
// with a plain-value password comparison.
func (r *Roster) Login(username, password string) (*User, error) {
	if username == r.adminUsername && password == r.adminPassword {
		return &User{
			ID:       0,
			Username: r.adminUsername,
			Name:     "Administrator",
			Role:     RoleAdmin,
		}, nil
	}

	user := r.FindByUsername(username)
	if user == nil || user.Password != password {
		return nil, ErrBadCredentials
	}

	out := *user
	return &out, nil
}

// Register adds a new regular user. The admin username is reserved and
// cannot be registered.
func (r *Roster) Register(username, name, password string) (int, error) {
	if username == r.adminUsername {
		return 0, ErrReservedUsername
	}
	return r.Add(username, name, password, RoleUser)
}
