package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of a raw password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a raw password against a stored bcrypt hash.
// The comparison is constant-time inside bcrypt.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
