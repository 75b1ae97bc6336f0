package daggithub

import (
	"strings"

	"github.com/devmatteini/dag/models"
)

const (
	TagPlaceholder     = "{tag}"
	VersionPlaceholder = "{version}"
)

// Tag turns an untagged asset name such as "tool-{tag}-linux.tar.gz" into
// the name the asset has in the release tagged tag.
func Tag(tag models.Tag, untagged string) string {
	return strings.NewReplacer(
		TagPlaceholder, tag.String(),
		VersionPlaceholder, tag.Version(),
	).Replace(untagged)
}

// Untag is the inverse of Tag: it replaces the tag (or, failing that, its
// version) found in assetName with the matching placeholder.
func Untag(tag models.Tag, assetName string) string {
	if tag == "" {
		return assetName
	}
	if strings.Contains(assetName, tag.String()) {
		return strings.Replace(assetName, tag.String(), TagPlaceholder, -1)
	}
	if version := tag.Version(); version != tag.String() && strings.Contains(assetName, version) {
		return strings.Replace(assetName, version, VersionPlaceholder, -1)
	}
	return assetName
}
