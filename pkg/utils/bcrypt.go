package utils

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPasscode hashes a staff passcode using bcrypt
func HashPasscode(passcode string) (string, error) {
	// Cost factor 10 (bcrypt default)
	bytes, err := bcrypt.GenerateFromPassword([]byte(passcode), 10)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ComparePasscode checks a submitted passcode against the stored value.
// Seeded and imported accounts keep plain passcodes, which are compared as
// strings; anything that looks like a bcrypt hash is verified as one.
func ComparePasscode(stored, passcode string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(passcode)) == nil
	}
	return stored == passcode
}

// CheckPasscodeStrength validates a new passcode
func CheckPasscodeStrength(passcode string) error {
	if len(passcode) < 4 {
		return errors.New("passcode must be at least 4 characters long")
	}
	return nil
}
