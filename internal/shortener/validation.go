package shortener

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// MaxSlugLength is the longest slug accepted from callers.
const MaxSlugLength = 64

var slugPattern = regexp.MustCompile(`^[\w-]+$`)

// Slugs that would shadow service routes.
var reservedSlugs = map[Slug]bool{
	"docs":   true,
	"health": true,
}

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// CreateInput is a request to create a short link. Slug and Created are optional.
type CreateInput struct {
	Slug    string
	URL     string
	Created time.Time
}

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field of a CreateInput that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+" "+f.Message)
	}

	return strings.Join(msgs, "; ")
}

// Validate checks the shape of a create request.
// It returns nil or a *ValidationError with one entry per rejected field.
func Validate(in CreateInput) error {
	var fields []FieldError

	if msg := validateURL(in.URL); msg != "" {
		fields = append(fields, FieldError{Field: "url", Message: msg})
	}

	if slug := strings.TrimSpace(in.Slug); slug != "" {
		if msg := validateSlug(slug); msg != "" {
			fields = append(fields, FieldError{Field: "slug", Message: msg})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func validateURL(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return "is required"
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return "must be a valid URL"
	}

	if !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return "must use http, https or ftp"
	}

	return ""
}

func validateSlug(slug string) string {
	if len(slug) > MaxSlugLength {
		return "must be at most 64 characters"
	}

	if !slugPattern.MatchString(slug) {
		return "must contain only letters, digits, underscores and hyphens"
	}

	if reservedSlugs[NormalizeSlug(slug)] {
		return "is reserved"
	}

	return ""
}
