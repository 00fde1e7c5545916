package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-templated/pkg/renderers/tui"
)

// FillCommand returns the interactive terminal filler
func FillCommand() *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "Fill a record's templated attributes interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Record type", Value: "user"},
			&cli.StringSliceFlag{Name: "textarea", Usage: "Attributes edited with a multi-line prompt"},
			&cli.BoolFlag{Name: "save", Usage: "Save the record through the before-validation hooks"},
		},
		Action: runFill,
	}
}

func runFill(c *cli.Context) error {
	s, err := setup(c)
	if err != nil {
		return err
	}

	filler, err := s.app.Filler(
		tui.WithPromptDriver(tui.NewSurveyDriver(c.App.Writer)),
		tui.WithTextArea(c.StringSlice("textarea")...),
	)
	if err != nil {
		return err
	}

	rec := s.recordFor(c.String("type"))
	ctx := backgroundContext(c)
	if _, err := filler.Fill(ctx, rec); err != nil {
		return err
	}

	if c.Bool("save") {
		id, err := s.app.Save(ctx, rec, rec.Attributes())
		if err != nil {
			return err
		}
		s.logger.Info().Str("record_type", rec.Type).Str("id", id).Msg("record saved")
	}

	payload, err := json.MarshalIndent(rec.Values, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(payload))
	return nil
}
