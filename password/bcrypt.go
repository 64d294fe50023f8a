package password

import (
	"github.com/marketeye/go-credstore/pkg/types"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied when none is configured.
const DefaultCost = bcrypt.DefaultCost

// BcryptHasher hashes credentials with bcrypt. Each Hash call generates a
// fresh salt; Verify delegates to bcrypt's constant-time comparison.
type BcryptHasher struct {
	cost int
}

// BcryptConfig customizes the hasher work factor.
type BcryptConfig struct {
	Cost int
}

// NewBcryptHasher constructs a hasher, clamping the cost into bcrypt's
// supported range.
func NewBcryptHasher(cfg BcryptConfig) *BcryptHasher {
	cost := cfg.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

var _ types.PasswordHasher = (*BcryptHasher)(nil)

// Hash returns the salted bcrypt digest of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the stored digest.
func (h *BcryptHasher) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
