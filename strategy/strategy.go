package strategy

import (
	"context"

	"github.com/devmatteini/dag/models"
	"github.com/devmatteini/dag/strategy/interactive"
	"github.com/devmatteini/dag/strategy/tagged"
)

// Strategy picks exactly one asset of a release.
type Strategy interface {
	Select(ctx context.Context, release models.Release) (models.Asset, error)
}

var DownloadMessages = interactive.Messages{
	SelectPrompt: "Pick the asset to download",
	QuitSelect:   "No asset selected",
}

// For returns the auto-select strategy when pattern is set, otherwise the
// interactive one backed by chooser.
func For(pattern string, chooser interactive.Chooser, messages interactive.Messages) Strategy {
	if pattern != "" {
		return &tagged.Strategy{Untagged: pattern}
	}
	return &interactive.Strategy{Chooser: chooser, Messages: messages}
}

// Resolve selects the asset of release to download.
func Resolve(ctx context.Context, release models.Release, pattern string, chooser interactive.Chooser) (models.Asset, error) {
	return For(pattern, chooser, DownloadMessages).Select(ctx, release)
}
