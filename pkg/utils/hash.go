// Package utils holds small shared helpers for the admin panel.
package utils

import "golang.org/x/crypto/bcrypt"

// hashCost is bcrypt's default; the panel has a handful of users, so there is
// no pressure to tune it down.
const hashCost = bcrypt.DefaultCost

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPassword compares a plain password with its bcrypt hash.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
