package printer

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Progress reports download progress on a terminal line that is redrawn on
// every write.
type Progress struct {
	Out io.Writer

	name    string
	dest    string
	total   int64
	written int64
}

func NewProgress(out io.Writer) *Progress {
	return &Progress{Out: out}
}

func (p *Progress) Start(name, dest string) {
	p.name = name
	p.dest = dest
	p.total = 0
	p.written = 0
	fmt.Fprintf(p.Out, "Downloading %s\n", color.CyanString(name))
}

func (p *Progress) SetTotal(n int64) {
	p.total = n
}

func (p *Progress) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.total > 0 {
		fmt.Fprintf(p.Out, "\r%s / %s", humanize.Bytes(uint64(p.written)), humanize.Bytes(uint64(p.total)))
	} else {
		fmt.Fprintf(p.Out, "\r%s", humanize.Bytes(uint64(p.written)))
	}
	return len(b), nil
}

func (p *Progress) Stop() {
	fmt.Fprintf(p.Out, "\r%s downloaded to %s\n", humanize.Bytes(uint64(p.written)), color.GreenString(p.dest))
}
