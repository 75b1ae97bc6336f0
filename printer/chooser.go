package printer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Chooser asks the operator to pick one entry of a numbered list.
type Chooser struct {
	In  io.Reader
	Out io.Writer
}

// Choose returns ok=false when the operator enters nothing, "q", or the
// input ends.
func (c *Chooser) Choose(ctx context.Context, prompt string, choices []string) (int, bool, error) {
	fmt.Fprintln(c.Out, color.New(color.Bold).Sprint(prompt))
	if len(choices) == 0 {
		fmt.Fprintln(c.Out, "  (no assets)")
		return 0, false, nil
	}
	for i, choice := range choices {
		fmt.Fprintf(c.Out, "  %s %s\n", color.YellowString("%2d)", i+1), choice)
	}

	reader := bufio.NewReader(c.In)
	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		fmt.Fprintf(c.Out, "Number [1-%d, q to quit]: ", len(choices))

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return 0, false, errors.Wrap(err, "could not read selection")
		}
		answer := strings.TrimSpace(line)
		if answer == "" || answer == "q" {
			return 0, false, nil
		}

		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(choices) {
			return n - 1, true, nil
		}
		if err == io.EOF {
			return 0, false, nil
		}
		fmt.Fprintf(c.Out, "%s is not a valid choice\n", answer)
	}
}
