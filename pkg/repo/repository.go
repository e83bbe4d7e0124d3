package repo

import (
	"strings"
	"time"
)

// Repository is an immutable snapshot of a GitLab project, fetched once per
// run and never re-fetched.
type Repository struct {
	ID             int
	Name           string
	Path           string
	Namespace      string
	Visibility     string
	Description    string
	CloneURL       string
	WebURL         string
	LastActivityAt *time.Time
	// HasCI is probed lazily while rendering listings.
	HasCI bool
}

// Private reports whether the destination repository should be private.
// GitLab "internal" visibility has no GitHub equivalent and maps to private.
func (r Repository) Private() bool {
	return r.Visibility != "public"
}

// SafeName derives the destination repository name. It prefers the
// platform-provided path slug, then the last path segment of the clone URL
// without a trailing ".git", then the display name. Spaces become hyphens.
// The derivation is pure: the same snapshot always yields the same slug.
func (r Repository) SafeName() string {
	if r.Path != "" {
		return r.Path
	}
	if r.CloneURL != "" {
		segment := strings.TrimRight(r.CloneURL, "/")
		if i := strings.LastIndex(segment, "/"); i >= 0 {
			segment = segment[i+1:]
		}
		segment = strings.TrimSuffix(segment, ".git")
		if segment != "" {
			return strings.ReplaceAll(segment, " ", "-")
		}
	}
	return strings.ReplaceAll(r.Name, " ", "-")
}
