// Package auth holds the credential primitives: bcrypt password hashing and
// the signed token that carries a session id in the browser cookie.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for every stored hash.
const BcryptCost = 10

// dummyHash is compared against when a username is unknown so that both
// login failure paths pay for one bcrypt comparison.
var dummyHash []byte

func init() {
	var err error
	dummyHash, err = bcrypt.GenerateFromPassword([]byte("bertie-dummy-password"), BcryptCost)
	if err != nil {
		panic(err)
	}
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword returns nil only when plain matches hash.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// CheckDummyPassword burns one comparison and always fails.
func CheckDummyPassword(plain string) error {
	if err := bcrypt.CompareHashAndPassword(dummyHash, []byte(plain)); err != nil {
		return err
	}
	return bcrypt.ErrMismatchedHashAndPassword
}
