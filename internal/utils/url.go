package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
}

// ValidateHTTPURL checks that rawURL is an absolute http(s) URL with a host.
func ValidateHTTPURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "url", Message: "url cannot be empty"}
	}

	if strings.ContainsAny(rawURL, " \t\r\n") {
		return &ValidationError{Field: "url", Message: "url cannot contain whitespace"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: err.Error()}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "scheme", Message: fmt.Sprintf("expected 'http' or 'https', got '%s'", u.Scheme)}
	}

	host := u.Hostname()
	if host == "" {
		return &ValidationError{Field: "host", Message: "host cannot be empty"}
	}

	if net.ParseIP(host) == nil && !isValidHostname(host) {
		return &ValidationError{Field: "host", Message: fmt.Sprintf("'%s' is not a valid hostname", host)}
	}

	if port := u.Port(); port == "" && strings.HasSuffix(u.Host, ":") {
		return &ValidationError{Field: "port", Message: "port cannot be empty"}
	}

	return nil
}

func isValidHostname(host string) bool {
	if len(host) > 253 {
		return false
	}

	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			default:
				return false
			}
		}
	}
	return true
}
