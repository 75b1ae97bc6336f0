package tagged

import (
	"context"
	"fmt"

	"github.com/devmatteini/dag/daggithub"
	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/models"
)

// NoAssetMatchError is returned when no asset of the release has the tagged
// name. Pattern is the untagged name as given by the operator.
type NoAssetMatchError struct {
	Pattern string
}

func (e *NoAssetMatchError) Error() string {
	return fmt.Sprintf("no asset found for %s", e.Pattern)
}

// Strategy selects the asset whose name is Untagged with the release tag
// substituted in.
type Strategy struct {
	Untagged string
}

func (s *Strategy) Select(ctx context.Context, release models.Release) (models.Asset, error) {
	name := daggithub.Tag(release.Tag, s.Untagged)
	log.G(ctx).Debugf("Looking for asset %s in release %s", name, release.Tag)

	for _, asset := range release.Assets {
		if asset.Name == name {
			return asset, nil
		}
	}
	return models.Asset{}, &NoAssetMatchError{Pattern: s.Untagged}
}
