package models

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
)

// Repository identifies a project hosted on GitHub.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses the "owner/name" form used on the command line.
func ParseRepository(s string) (Repository, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return Repository{Owner: parts[0], Name: parts[1]}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// Tag is the label of a release as returned by GitHub, e.g. v1.2.3.
type Tag string

func (t Tag) String() string {
	return string(t)
}

// Version returns the tag without its leading "v" when what remains is a
// version such as 1.2.3, 1.2 or 1. Any other tag is returned as is.
func (t Tag) Version() string {
	trimmed := strings.TrimPrefix(string(t), "v")
	if trimmed == string(t) {
		return string(t)
	}
	if _, err := semver.ParseTolerant(trimmed); err != nil {
		return string(t)
	}
	return trimmed
}

type Release struct {
	Repository Repository
	Tag        Tag
	Assets     []Asset
}

type Asset struct {
	Name        string
	DownloadURL string
	Size        int64
	ContentType string
}
