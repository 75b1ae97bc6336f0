package strategy

import (
	"context"
	"testing"

	"github.com/devmatteini/dag/models"
	"github.com/devmatteini/dag/strategy/interactive"
	"github.com/devmatteini/dag/strategy/tagged"
	"github.com/pkg/errors"
)

type panicChooser struct{}

func (panicChooser) Choose(context.Context, string, []string) (int, bool, error) {
	panic("chooser must not be used in auto mode")
}

type firstChooser struct{}

func (firstChooser) Choose(_ context.Context, _ string, choices []string) (int, bool, error) {
	return 0, len(choices) > 0, nil
}

func TestResolve(t *testing.T) {
	release := models.Release{
		Tag: "v1.0.0",
		Assets: []models.Asset{
			{Name: "tool-v1.0.0-linux.tar.gz"},
			{Name: "tool-v1.0.0-mac.tar.gz"},
		},
	}

	t.Run("auto mode", func(t *testing.T) {
		got, err := Resolve(context.Background(), release, "tool-{tag}-linux.tar.gz", panicChooser{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.Name != "tool-v1.0.0-linux.tar.gz" {
			t.Errorf("Resolve() = %v", got.Name)
		}
	})

	t.Run("auto mode without match", func(t *testing.T) {
		_, err := Resolve(context.Background(), release, "tool-linux.zip", panicChooser{})
		var noMatch *tagged.NoAssetMatchError
		if !errors.As(err, &noMatch) || noMatch.Pattern != "tool-linux.zip" {
			t.Errorf("expected no match for the untagged pattern, got %v", err)
		}
	})

	t.Run("auto mode needs a placeholder for the tag", func(t *testing.T) {
		_, err := Resolve(context.Background(), release, "tool-linux.tar.gz", panicChooser{})
		var noMatch *tagged.NoAssetMatchError
		if !errors.As(err, &noMatch) || noMatch.Pattern != "tool-linux.tar.gz" {
			t.Fatalf("expected no match for a pattern without placeholders, got %v", err)
		}

		got, err := Resolve(context.Background(), release, "tool-{tag}-linux.tar.gz", panicChooser{})
		if err != nil || got.Name != "tool-v1.0.0-linux.tar.gz" {
			t.Errorf("Resolve() = (%v, %v), want tool-v1.0.0-linux.tar.gz", got.Name, err)
		}
	})

	t.Run("auto mode with version placeholder", func(t *testing.T) {
		got, err := Resolve(context.Background(), models.Release{Tag: "v1.2", Assets: []models.Asset{{Name: "tool_1.2_amd64.deb"}}}, "tool_{version}_amd64.deb", panicChooser{})
		if err != nil || got.Name != "tool_1.2_amd64.deb" {
			t.Errorf("Resolve() = (%v, %v), want tool_1.2_amd64.deb", got.Name, err)
		}
	})

	t.Run("interactive mode", func(t *testing.T) {
		got, err := Resolve(context.Background(), release, "", firstChooser{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.Name != "tool-v1.0.0-linux.tar.gz" {
			t.Errorf("Resolve() = %v", got.Name)
		}
	})

	t.Run("interactive mode declined", func(t *testing.T) {
		_, err := Resolve(context.Background(), models.Release{Tag: "v1.0.0"}, "", firstChooser{})
		var noSelection *interactive.NoSelectionError
		if !errors.As(err, &noSelection) {
			t.Errorf("expected *interactive.NoSelectionError, got %v", err)
		}
	})
}
