package helpers

import "golang.org/x/crypto/bcrypt"

// DemoPasswordCost keeps seeding fast; real credentials use bcrypt.DefaultCost.
const DemoPasswordCost = bcrypt.MinCost

// HashPassword hashes the plain text password with bcrypt at the given cost.
// Costs outside bcrypt's range fall back to the default.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PasswordMatches compares a bcrypt hash with a plain password.
func PasswordMatches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
