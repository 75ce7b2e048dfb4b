package helpers

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	timePattern      = regexp.MustCompile(`^([0-1]\d|2[0-3]):([0-5]\d)$`)
	eventNamePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
)

// ValidateEventName checks the trimmed title: 2-50 characters, letters,
// digits and spaces only.
func ValidateEventName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return fmt.Errorf("Title must contain at least two characters")
	}
	if len(trimmed) > 50 {
		return fmt.Errorf("Title must be less than 50 characters long")
	}
	if !eventNamePattern.MatchString(trimmed) {
		return fmt.Errorf("Title can only contain letters, numbers")
	}
	return nil
}

// ValidateTime checks for HH:mm with HH in 00-23 and mm in 00-59.
func ValidateTime(value string) error {
	if !timePattern.MatchString(value) {
		return fmt.Errorf("Invalid time format. Use HH:mm.")
	}
	return nil
}

// ParseEventDate accepts RFC3339 or YYYY-MM-DD.
func ParseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// NormalizeTagValue lowercases a tag name and strips all whitespace.
func NormalizeTagValue(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
