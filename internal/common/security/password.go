package security

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with bcrypt. The salt is random,
// so hashing the same password twice yields different strings. A cost of 0
// or less falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
// Malformed hashes fail verification instead of panicking; the comparison
// itself is constant-time.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
