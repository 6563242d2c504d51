// Package sanitize cleans user-supplied free text before it is stored.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxTextLength caps report messages and admin notes.
const MaxTextLength = 2000

// ValidationError describes rejected input. Its message is user-safe and is
// returned to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Sanitizer strips markup from free-text fields and enforces a length cap.
type Sanitizer struct {
	policy *bluemonday.Policy
	maxLen int
}

// New creates a Sanitizer with the strict policy: no HTML survives. Reports
// are plain text; anything that looks like markup is removed, not escaped.
func New() *Sanitizer {
	return &Sanitizer{
		policy: bluemonday.StrictPolicy(),
		maxLen: MaxTextLength,
	}
}

// Clean returns the sanitized text or a ValidationError explaining the
// rejection. The length cap applies to the input, before stripping, so a
// client cannot smuggle an oversized payload behind markup.
func (s *Sanitizer) Clean(text string) (string, error) {
	if len(text) > s.maxLen {
		return "", &ValidationError{
			Reason: fmt.Sprintf("text exceeds maximum length of %d characters", s.maxLen),
		}
	}

	cleaned := strings.TrimSpace(s.policy.Sanitize(text))
	if cleaned == "" && strings.TrimSpace(text) != "" {
		return "", &ValidationError{
			Reason: "text contains no permitted content",
		}
	}

	return cleaned, nil
}

// CleanRequired is Clean plus a non-empty check for mandatory fields.
func (s *Sanitizer) CleanRequired(text, field string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{
			Reason: field + " is required",
		}
	}
	return s.Clean(text)
}
