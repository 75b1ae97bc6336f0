package interactive

import (
	"context"
	"testing"

	"github.com/devmatteini/dag/models"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

type fakeChooser struct {
	index  int
	ok     bool
	err    error
	prompt string
	got    []string
	calls  int
}

func (f *fakeChooser) Choose(ctx context.Context, prompt string, choices []string) (int, bool, error) {
	f.calls++
	f.prompt = prompt
	f.got = choices
	return f.index, f.ok, f.err
}

var messages = Messages{SelectPrompt: "Pick the asset to download", QuitSelect: "No asset selected"}

func TestStrategy_Select(t *testing.T) {
	release := models.Release{
		Tag: "v1.0.0",
		Assets: []models.Asset{
			{Name: "b.tar.gz"},
			{Name: "a.zip"},
			{Name: "c.deb"},
		},
	}
	chooser := &fakeChooser{index: 1, ok: true}
	s := &Strategy{Chooser: chooser, Messages: messages}

	got, err := s.Select(context.Background(), release)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.Name != "a.zip" {
		t.Errorf("Select() = %v, want a.zip", got.Name)
	}
	if diff := cmp.Diff([]string{"b.tar.gz", "a.zip", "c.deb"}, chooser.got); diff != "" {
		t.Errorf("choices mismatch, order must be preserved (-want +got):\n%s", diff)
	}
	if chooser.prompt != messages.SelectPrompt {
		t.Errorf("prompt = %q", chooser.prompt)
	}
}

func TestStrategy_Select_emptyReleaseStillAsks(t *testing.T) {
	chooser := &fakeChooser{ok: false}
	s := &Strategy{Chooser: chooser, Messages: messages}

	_, err := s.Select(context.Background(), models.Release{Tag: "v1", Assets: []models.Asset{}})
	if chooser.calls != 1 {
		t.Fatalf("chooser called %d times, want 1", chooser.calls)
	}
	if len(chooser.got) != 0 {
		t.Errorf("choices = %v, want none", chooser.got)
	}
	var noSelection *NoSelectionError
	if !errors.As(err, &noSelection) {
		t.Fatalf("expected *NoSelectionError, got %v", err)
	}
	if noSelection.Error() != "No asset selected" {
		t.Errorf("Error() = %v", noSelection.Error())
	}
}

func TestStrategy_Select_chooserFailure(t *testing.T) {
	boom := errors.New("terminal closed")
	s := &Strategy{Chooser: &fakeChooser{err: boom}, Messages: messages}

	_, err := s.Select(context.Background(), models.Release{Assets: []models.Asset{{Name: "a"}}})
	if errors.Cause(err) != boom {
		t.Errorf("expected wrapped chooser error, got %v", err)
	}
}
