// ABOUTME: Tests for login and registration on the roster store
// ABOUTME: Covers the synthetic admin identity and reserved username

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_BuiltinAdmin(t *testing.T) {
	r := setupTestRoster(t)

	user, err := r.Login(DefaultAdminUsername, DefaultAdminPassword)
	require.NoError(t, err)

	assert.Equal(t, 0, user.ID, "admin identity is synthetic, id 0")
	assert.Equal(t, "Administrator", user.Name)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.Equal(t, 0, r.Len(), "admin identity is never persisted")
}

func TestLogin_BuiltinAdmin_WrongPassword(t *testing.T) {
	r := setupTestRoster(t)

	_, err := r.Login(DefaultAdminUsername, "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_RosterUser(t *testing.T) {
	r := setupTestRoster(t)

	id, err := r.Register("frank", "Frank Herbert", "spice")
	require.NoError(t, err)

	user, err := r.Login("frank", "spice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, RoleUser, user.Role)

	_, err = r.Login("frank", "sand")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = r.Login("nobody", "spice")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestRegister_ReservedUsername(t *testing.T) {
	r := setupTestRoster(t)

	_, err := r.Register(DefaultAdminUsername, "Impostor", "pass")
	assert.ErrorIs(t, err, ErrReservedUsername)
	assert.Equal(t, 0, r.Len())
}

func TestSetAdminCredentials(t *testing.T) {
	r := setupTestRoster(t)
	r.SetAdminCredentials("keeper", "cloister")

	_, err := r.Login(DefaultAdminUsername, DefaultAdminPassword)
	assert.ErrorIs(t, err, ErrBadCredentials, "default pair disabled after override")

	user, err := r.Login("keeper", "cloister")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)

	_, err = r.Register("keeper", "Impostor", "pass")
	assert.ErrorIs(t, err, ErrReservedUsername)
}
