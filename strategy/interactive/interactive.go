package interactive

import (
	"context"

	"github.com/devmatteini/dag/models"
	"github.com/pkg/errors"
)

// Messages are the texts shown by the chooser.
type Messages struct {
	SelectPrompt string
	QuitSelect   string
}

// Chooser lets the operator pick one of choices. ok is false when the
// operator quits without choosing.
type Chooser interface {
	Choose(ctx context.Context, prompt string, choices []string) (index int, ok bool, err error)
}

// NoSelectionError is returned when the operator quits the chooser.
type NoSelectionError struct {
	Message string
}

func (e *NoSelectionError) Error() string {
	return e.Message
}

// Strategy hands every asset of the release, in release order, to Chooser.
type Strategy struct {
	Chooser  Chooser
	Messages Messages
}

func (s *Strategy) Select(ctx context.Context, release models.Release) (models.Asset, error) {
	names := make([]string, len(release.Assets))
	for i, asset := range release.Assets {
		names[i] = asset.Name
	}

	index, ok, err := s.Chooser.Choose(ctx, s.Messages.SelectPrompt, names)
	if err != nil {
		return models.Asset{}, errors.Wrap(err, "asset selection failed")
	}
	if !ok {
		return models.Asset{}, &NoSelectionError{Message: s.Messages.QuitSelect}
	}
	if index < 0 || index >= len(release.Assets) {
		return models.Asset{}, errors.Errorf("asset selection out of range: %d", index)
	}
	return release.Assets[index], nil
}
