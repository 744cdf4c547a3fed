package validation

import (
	"net/url"
	"strings"

	"wiki-quiz/internal/domain"
)

const (
	MsgURLEmpty        = "URL cannot be empty"
	MsgURLNotWikipedia = "Please enter a valid Wikipedia URL"

	wikipediaHostSuffix = "wikipedia.org"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticleURL checks that raw is a parseable absolute URL whose host
// ends with wikipedia.org. Both the CLI and the API use it, so a URL the
// client accepts is never rejected by the server for a different reason.
func (v *Validator) ValidateArticleURL(raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		errors = append(errors, domain.NewMissingFieldError("url", MsgURLEmpty))
		return errors
	}

	if !isWikipediaURL(trimmed) {
		errors = append(errors, domain.NewInvalidFormatError("url", MsgURLNotWikipedia))
	}

	return errors
}

// ValidateQuizID validates the path parameter of the detail endpoint.
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id", "Quiz id cannot be empty"))
	} else if len(id) > 64 {
		errors = append(errors, domain.NewInvalidFormatError("id", "Quiz id is too long"))
	}

	return errors
}

// isWikipediaURL reports whether s parses with a scheme and a host ending in
// wikipedia.org.
func isWikipediaURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Hostname()), wikipediaHostSuffix)
}
