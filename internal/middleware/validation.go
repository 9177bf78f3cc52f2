package middleware

import (
	"regexp"
	"strings"
)

// Field length limits matching database schema constraints.
const (
	MaxTitleLen       = 120
	MaxDescriptionLen = 5000
	MaxCategoryLen    = 40
	MaxTagLen         = 30
	MaxTags           = 20
	MaxUsernameLen    = 32
)

var (
	// categoryRe matches lowercase category slugs.
	categoryRe = regexp.MustCompile(`^[a-z0-9][a-z0-9 &-]*$`)
	// tagRe matches tag tokens: letters, digits, dash, underscore.
	tagRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// usernameRe matches account handles.
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ValidateTitle checks a video title. Returns the trimmed value and an
// error message ("" when valid).
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 120 characters"
	}
	return title, ""
}

// ValidateDescription bounds the description length.
func ValidateDescription(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLen {
		return "", "description must be at most 5000 characters"
	}
	return desc, ""
}

// ValidateCategory normalizes and checks a category slug.
func ValidateCategory(category string) (string, string) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "", "category is required"
	}
	if len(category) > MaxCategoryLen {
		return "", "category must be at most 40 characters"
	}
	if !categoryRe.MatchString(category) {
		return "", "category contains invalid characters"
	}
	return category, ""
}

// ValidateTags normalizes a tag list: trims, lowercases, drops empties
// and duplicates. Returns an error message when a tag is malformed or
// the list is too long.
func ValidateTags(tags []string) ([]string, string) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if len(t) > MaxTagLen {
			return nil, "tags must be at most 30 characters each"
		}
		if !tagRe.MatchString(t) {
			return nil, "tags contain invalid characters"
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > MaxTags {
		return nil, "at most 20 tags are allowed"
	}
	return out, ""
}

// ValidateUsername checks an account handle.
func ValidateUsername(username string) (string, string) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", "username is required"
	}
	if len(username) > MaxUsernameLen {
		return "", "username must be at most 32 characters"
	}
	if !usernameRe.MatchString(username) {
		return "", "username contains invalid characters"
	}
	return username, ""
}
