package utils

import (
	"crypto/subtle"
	"errors"
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort      = errors.New("password must be at least 12 characters long")
	ErrPasswordNoUppercase   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLowercase   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit       = errors.New("password must contain at least one digit")
	ErrPasswordNoSpecialChar = errors.New("password must contain at least one special character")
)

var specialCharRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>\[\]\\/_\-+=~` + "`" + `';]`)

// PasswordWeaknesses lists every strength rule the admin password breaks.
// An empty result means the password is acceptable.
func PasswordWeaknesses(password string) []error {
	var issues []error
	if len(password) < 12 {
		issues = append(issues, ErrPasswordTooShort)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		issues = append(issues, ErrPasswordNoUppercase)
	}
	if !lower {
		issues = append(issues, ErrPasswordNoLowercase)
	}
	if !digit {
		issues = append(issues, ErrPasswordNoDigit)
	}
	if !specialCharRegex.MatchString(password) {
		issues = append(issues, ErrPasswordNoSpecialChar)
	}
	return issues
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares password against a bcrypt hash when one is
// configured, otherwise against the plain configured password in constant
// time.
func CheckPassword(password, hash, plain string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(plain)) == 1
}
