// Package session drives the interactive terminal menus.
//
// # Overview
//
// A Session reads menu choices from its input, runs the matching store
// or borrowing operation, and renders the result. It starts at the
// login/register screen, then loops in the admin or user menu until
// logout or exit. Exit persists both stores.
//
// # Persistence
//
// The affected store is saved after every successful mutation, so a
// crash mid-session loses at most the operation in flight. Save
// failures are reported to the operator but do not end the session.
//
// # Input
//
// Prompts read one line at a time. Passwords are read without echo
// when input is a terminal. In the update flow, an empty line keeps a
// field's current value.
package session
