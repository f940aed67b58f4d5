package encrypt

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	errprocess "short_video_service/pkg/err"
)

// bcrypt.DefaultCost = 10
const bcryptCost = bcrypt.DefaultCost

// ErrPasswordMismatch 密碼不符
var ErrPasswordMismatch = errors.New("password does not match")

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#\$%\^&\*]`)
)

// ValidatePasswordStrength 驗證密碼強度
func ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < 8:
		return errprocess.InvalidInput("password must be at least 8 characters long")
	case len(password) > 72:
		// bcrypt 只取前 72 bytes
		return errprocess.InvalidInput("password must be at most 72 characters long")
	case !upperRe.MatchString(password):
		return errprocess.InvalidInput("password must contain at least one uppercase letter")
	case !digitRe.MatchString(password):
		return errprocess.InvalidInput("password must contain at least one digit")
	case !specialRe.MatchString(password):
		return errprocess.InvalidInput("password must contain at least one special character (!@#$%^&*)")
	}
	return nil
}

// HashPassword 檢查強度後以 bcrypt 加密
func HashPassword(password string) (string, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// CheckPassword 驗證密碼是否匹配
func CheckPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
