package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
)

// NormalizeCommand returns the command applying the save-time rule
func NormalizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Apply the save-time normalization to attribute values and print the result",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Record type", Value: "user"},
			&cli.StringSliceFlag{Name: "set", Aliases: []string{"s"}, Usage: "Attribute value as `ATTR=VALUE` (repeatable)"},
		},
		Action: runNormalize,
	}
}

func runNormalize(c *cli.Context) error {
	s, err := setup(c)
	if err != nil {
		return err
	}

	values, names, err := parseAssignments(c.StringSlice("set"))
	if err != nil {
		return err
	}

	rec := s.recordFor(c.String("type"), names...)
	for _, name := range names {
		value := values[name]
		if err := rec.WriteAttribute(name, &value); err != nil {
			return err
		}
	}

	if err := s.app.Registry().Normalizer().Normalize(backgroundContext(c), rec); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	payload, err := json.MarshalIndent(rec.Values, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(payload))
	return nil
}
