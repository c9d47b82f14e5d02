package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no error was collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date layouts accepted on input. The US layout is what the scheduling
// front-end posts.
var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// IsValidDate parses a calendar date in UTC.
func IsValidDate(dateStr string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, dateStr); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// ParseDateIn parses a calendar date and anchors it at midnight in loc.
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock checks a 24-hour HH:MM time of day.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidMonth reports whether m is a calendar month number.
func IsValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{2,64}$`)

// IsValidEmployeeID checks the external employee identifier format.
func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}
