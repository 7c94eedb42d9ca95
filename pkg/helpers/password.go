package helpers

import (
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the 10 salt rounds existing hashes were produced with.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest plaintext bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by HashPassword for plaintexts over MaxPasswordBytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

var bcryptCost atomic.Int64

func init() { bcryptCost.Store(DefaultBcryptCost) }

// SetBcryptCost overrides the cost used by HashPassword. Out of range values are ignored.
func SetBcryptCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return
	}
	bcryptCost.Store(int64(cost))
}

// HashPassword hashes the plain text password using bcrypt with a fresh salt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), int(bcryptCost.Load()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash. Malformed hashes never match.
func VerifyPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
