package purge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/thomiceli/gists-gone/internal/gist"
)

// Deleter deletes a single remote gist.
type Deleter interface {
	DeleteGist(ctx context.Context, id string) error
}

type Options struct {
	Force  bool
	DryRun bool
	In     io.Reader
	Out    io.Writer
}

type Report struct {
	Deleted int
	Failed  int
}

// Run asks for confirmation (unless forced) and deletes the candidate
// gists one by one. A failed deletion is logged and the run continues;
// only context cancellation stops the loop.
func Run(ctx context.Context, deleter Deleter, gists []gist.Gist, opts Options) (Report, error) {
	var report Report

	if len(gists) == 0 {
		fmt.Fprintln(opts.Out, "No gists are eligible for deletion.")
		return report, nil
	}

	if opts.DryRun {
		List(opts.Out, gists)
		fmt.Fprintf(opts.Out, "%d gists would be deleted.\n", len(gists))
		return report, nil
	}

	if !opts.Force && !confirm(opts.In, opts.Out, len(gists)) {
		fmt.Fprintln(opts.Out, "Aborted, no gists were deleted.")
		return report, nil
	}

	for _, g := range gists {
		if err := deleter.DeleteGist(ctx, g.ID); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			log.Error().Err(err).Str("gist", g.ID).Msg("Failed to delete gist")
			report.Failed++
			continue
		}
		fmt.Fprintf(opts.Out, "Deleted %s (%s, %s)\n", g.ID, g.Language, g.Visibility)
		report.Deleted++
	}

	fmt.Fprintf(opts.Out, "Deleted %d gists, %d failed.\n", report.Deleted, report.Failed)
	return report, nil
}

func confirm(in io.Reader, out io.Writer, count int) bool {
	fmt.Fprintf(out, "%d gists will be deleted. This cannot be undone.\n", count)
	fmt.Fprint(out, "Proceed? [y/N] ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	switch strings.TrimSpace(scanner.Text()) {
	case "y", "Y", "yes", "Yes":
		return true
	default:
		return false
	}
}

// List writes one line per gist, for the list command and dry runs.
func List(out io.Writer, gists []gist.Gist) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	for _, g := range gists {
		description := g.Description
		if description == "" {
			description = "(no description)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d files\t%s\t%s\t%s\n",
			g.ID, g.Visibility, g.Language, g.NbFiles,
			humanize.IBytes(g.Size), humanize.Time(g.CreatedAt), description)
	}
	w.Flush()
}
