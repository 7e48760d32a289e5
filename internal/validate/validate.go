// Package validate provides the simple format predicates and the input
// sanitizer consumed by the screening core.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const maxInputLength = 5000

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStripRe = regexp.MustCompile(`[\s\-.()+]`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	controlRe    = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	stackSplitRe = regexp.MustCompile(`[,;/\n]+`)
)

// Email checks the address against the standard local@domain.tld shape.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email address is required")
	}
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return errors.New("please provide a valid email address (e.g., example@email.com)")
	}
	return nil
}

// Phone accepts international formats whose cleaned digits number 10 to 15.
func Phone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("phone number is required")
	}

	cleaned := phoneStripRe.ReplaceAllString(phone, "")
	if !digitsOnlyRe.MatchString(cleaned) || len(cleaned) < 10 || len(cleaned) > 15 {
		return errors.New("please provide a valid phone number (10-15 digits)")
	}
	return nil
}

// YearsOfExperience parses a value like "5 years" or "5+" into an integer
// between 0 and 50.
func YearsOfExperience(years string) (int, error) {
	if strings.TrimSpace(years) == "" {
		return 0, errors.New("years of experience is required")
	}

	cleaned := nonDigitRe.ReplaceAllString(years, "")
	if cleaned == "" {
		return 0, errors.New("please provide a numeric value for years of experience")
	}

	parsed, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse years of experience: %w", err)
	}
	if parsed < 0 || parsed > 50 {
		return 0, errors.New("years of experience should be between 0 and 50")
	}
	return parsed, nil
}

// TechStack splits a comma/semicolon/slash/newline separated list of
// technologies into cleaned entries.
func TechStack(stack string) ([]string, error) {
	if strings.TrimSpace(stack) == "" {
		return nil, errors.New("tech stack is required")
	}

	parts := stackSplitRe.Split(stack, -1)
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	if len(cleaned) == 0 {
		return nil, errors.New("please list at least one technology")
	}
	return cleaned, nil
}

// Sanitize strips control characters (newlines and tabs survive) and caps the
// input length. Idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	sanitized := strings.TrimSpace(text)
	sanitized = controlRe.ReplaceAllString(sanitized, "")
	// Cap on runes, not bytes, so a multibyte character at the boundary is
	// dropped whole instead of split into invalid UTF-8.
	if runes := []rune(sanitized); len(runes) > maxInputLength {
		sanitized = string(runes[:maxInputLength])
		sanitized = strings.TrimSpace(sanitized)
	}
	return sanitized
}
