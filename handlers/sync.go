package handlers

import (
	"context"

	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/manifest"
	"github.com/devmatteini/dag/models"
)

// Sync downloads or installs every entry. A failing entry is logged and
// does not stop the others; the number of failures is returned.
func (h *Handler) Sync(ctx context.Context, entries []manifest.Entry) int {
	failed := 0
	for _, entry := range entries {
		ctx := log.WithLogger(ctx, log.G(ctx).WithField("entry", entry.Name))

		if err := h.syncEntry(ctx, entry); err != nil {
			log.G(ctx).Errorf("Error handling %s: %v", entry.Name, err)
			failed++
			continue
		}
		log.G(ctx).Infof("%s is up to date", entry.Name)
	}
	return failed
}

func (h *Handler) syncEntry(ctx context.Context, entry manifest.Entry) error {
	tag := models.Tag(entry.Tag)
	if entry.Install {
		_, err := h.Install(ctx, InstallOptions{
			Repository:  entry.Repo(),
			Tag:         tag,
			Select:      entry.Select,
			Output:      entry.Output,
			InstallFile: entry.InstallFile,
			Verify:      entry.Verify,
		})
		return err
	}
	_, err := h.Download(ctx, DownloadOptions{
		Repository: entry.Repo(),
		Tag:        tag,
		Select:     entry.Select,
		Output:     entry.Output,
		Verify:     entry.Verify,
	})
	return err
}
