package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SetPassword(t *testing.T) {
	u := &User{}
	changed, err := u.SetPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, "hunter22", u.Password)

	hash := u.Password
	changed, err = u.SetPassword("hunter22")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, hash, u.Password)

	changed, err = u.SetPassword("hunter23")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, hash, u.Password)
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, HasAnyRole([]string{RoleUser, RoleAdmin}, RoleAdmin))
	assert.False(t, HasAnyRole([]string{RoleUser}, RoleAdmin))
	assert.False(t, HasAnyRole([]string{RoleUser}))
	assert.False(t, HasAnyRole(nil, RoleUser))

	u := &User{Roles: DefaultRoles()}
	assert.True(t, u.HasAnyRole(RoleUser, RoleAdmin))
}

func TestListing_ReviewScoreValue(t *testing.T) {
	assert.Equal(t, 0.0, (&Listing{}).ReviewScoreValue())
	assert.Equal(t, 9.0, (&Listing{ReviewScores: &ReviewScores{Value: 9}}).ReviewScoreValue())
}
