package entity

import (
	"time"

	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
)

// User is the aggregate root for accounts.
// Password holds a bcrypt hash; the plaintext never leaves SetPassword.
type User struct {
	ID        string    `bson:"_id,omitempty"`
	Username  string    `bson:"username"`
	Password  string    `bson:"password"`
	Roles     []string  `bson:"roles"`
	APIKey    string    `bson:"apiKey"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SetPassword hashes plain into Password. It reports false and leaves the
// hash untouched when plain already matches the stored hash.
func (u *User) SetPassword(plain string) (bool, error) {
	if u.Password != "" && helpers.CompareHashAndPassword(u.Password, plain) {
		return false, nil
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return false, err
	}
	u.Password = hash
	return true, nil
}

// HasAnyRole reports whether the user holds at least one of roles
func (u *User) HasAnyRole(roles ...string) bool {
	return HasAnyRole(u.Roles, roles...)
}
