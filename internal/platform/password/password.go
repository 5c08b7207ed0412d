// Package password wraps bcrypt hashing and random credential generation for
// doctor, patient and applicant secrets. Plaintext passwords are never
// persisted; the one-time applicant password exists only in the submission
// response.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a plaintext password with bcrypt at the default cost.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored bcrypt hash. A mismatch is
// not an error; errors indicate a malformed hash.
func Verify(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}
		return false, fmt.Errorf("verify password: %w", err)
	}
	return true, nil
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$"

// Generate returns a random password of the given length drawn from a
// letters+digits+symbols charset using crypto/rand.
func Generate(length int) (string, error) {
	if length < 8 {
		return "", fmt.Errorf("password length must be at least 8 characters")
	}
	return randomString(passwordCharset, length)
}

const digits = "0123456789"
const upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateDigits returns a random numeric string, used for application IDs.
func GenerateDigits(length int) (string, error) {
	return randomString(digits, length)
}

// GenerateUpperAlnum returns a random upper-case alphanumeric string, used
// for applicant login identifiers.
func GenerateUpperAlnum(length int) (string, error) {
	return randomString(upperAlnum, length)
}

func randomString(charset string, length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random character: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}
