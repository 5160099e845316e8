package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost factor the accounts were originally hashed with.
// Changing it only affects newly hashed passwords; existing hashes keep working.
const bcryptCost = 10

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
// bcrypt's comparison is constant-time with respect to the hash contents.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
