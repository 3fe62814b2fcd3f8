package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/gallery/internal/core/gallery"
	"github.com/colonyops/gallery/internal/core/logging"
	"github.com/colonyops/gallery/pkg/iojson"
)

type PhotosCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewPhotosCmd creates a new photos command
func NewPhotosCmd(flags *Flags) *PhotosCmd {
	return &PhotosCmd{flags: flags}
}

// Register adds the photos command to the application
func (cmd *PhotosCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "photos",
		Usage:     "Fetch the gallery once and list it",
		UsageText: "gallery photos [--json]",
		Description: `Runs the same one-shot load as the interactive gallery and prints the
result as a table of id, photographer, and portrait URI.

Use --json for one JSON object per photo.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PhotosCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	gm := gallery.NewModel(cmd.flags.Source(),
		gallery.WithTimeout(cmd.flags.Config.API.Timeout),
		gallery.WithLogger(logging.SessionComponent("gallery", cmd.flags.SessionID)),
	)

	state := gm.Load(ctx)
	if state.Phase == gallery.PhaseFailed {
		if cmd.jsonOutput {
			_ = iojson.WriteErrorTo(c.Root().ErrWriter, "load photos", map[string]any{"reason": state.Reason})
			return cli.Exit("", 1)
		}
		return fmt.Errorf("load photos: %s", state.Reason)
	}

	out := c.Root().Writer

	if len(state.Sequence) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No photos found\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, rec := range state.Sequence {
			if err := iojson.WriteLine(out, rec); err != nil {
				return fmt.Errorf("encode photo: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPHOTOGRAPHER\tPORTRAIT")
	for _, rec := range state.Sequence {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", rec.ID, rec.Photographer, rec.PortraitURI)
	}
	return w.Flush()
}
