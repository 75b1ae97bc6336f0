package printer

import (
	"io"

	"github.com/devmatteini/dag/daggithub"
	"github.com/devmatteini/dag/models"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// UntagTable prints every asset of release next to the name to pass to
// --select.
func UntagTable(w io.Writer, release models.Release) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Asset", "Select", "Size")
	tbl.WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, asset := range release.Assets {
		tbl.AddRow(asset.Name, daggithub.Untag(release.Tag, asset.Name), humanize.Bytes(uint64(asset.Size)))
	}

	tbl.Print()
}
