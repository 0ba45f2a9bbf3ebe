// Package roster implements the user store and authentication.
//
// # Overview
//
// The roster holds registered users and their roles. Users live in
// memory during a session and are persisted to a pipe-delimited text
// file on save:
//
//	id|username|name|password|role
//
// Malformed lines are skipped on load with a warning rather than
// failing the whole file.
//
// # Built-in Admin
//
// One admin identity exists outside the roster file. Its credentials
// come from configuration (default admin/admin123) and logging in with
// them yields a synthetic user with id 0 that is never persisted. The
// admin username is reserved: it cannot be registered as a regular
// account.
//
// # Authentication
//
// Login checks the built-in admin credentials first, then falls back
// to a roster lookup with a plain password comparison. Passwords are
// stored in clear text; this is a single-user terminal tool, not a
// networked service.
package roster
