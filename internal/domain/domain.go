// Package domain validates host names and e-mail addresses received from
// forms and command arguments, and confines derived paths to their roots.
//
// Validation is pure: nothing here touches the file system except Within,
// which only resolves paths lexically.
package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	panelerrors "github.com/ksyq12/vhostpanel/internal/errors"
)

// namePattern accepts an alphanumeric start and end with alphanumerics,
// hyphens and dots in between, at most 255 characters in total.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]{0,253}[a-zA-Z0-9])?$`)

// IsValid reports whether name is an acceptable site domain.
func IsValid(name string) bool {
	if name == "" {
		return false
	}
	if !namePattern.MatchString(name) {
		return false
	}
	// Checked again even though the pattern already excludes them.
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// Validate returns a validation error when name is not a valid domain.
func Validate(name string) error {
	if !IsValid(name) {
		return panelerrors.InvalidDomain(name)
	}
	return nil
}

// IsValidEmail is the minimal contact address check: non-empty, has an '@'
// and stays on one directive token, so no whitespace or control characters.
func IsValidEmail(email string) bool {
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	return !strings.ContainsFunc(email, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// ValidateEmail returns a validation error when email is rejected.
func ValidateEmail(email string) error {
	if !IsValidEmail(email) {
		return panelerrors.ErrInvalidEmail
	}
	return nil
}

// Within joins elem onto root and returns the absolute result, failing with
// a security error if the result is not root itself or a descendant of it.
func Within(root string, elem ...string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", panelerrors.Wrap(panelerrors.ErrCodeIO, "failed to resolve root", err)
	}

	target, err := filepath.Abs(filepath.Join(append([]string{absRoot}, elem...)...))
	if err != nil {
		return "", panelerrors.Wrap(panelerrors.ErrCodeIO, "failed to resolve path", err)
	}

	rel, err := filepath.Rel(absRoot, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", panelerrors.PathTraversal(strings.Join(elem, string(filepath.Separator)))
	}

	return target, nil
}
