package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor
const PasswordCost = bcrypt.DefaultCost

// dummyHash is compared against when the user does not exist, keeping
// unknown-user and wrong-password paths equally slow.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CompareDummy burns one bcrypt comparison and always reports false
func CompareDummy(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
	return false
}
