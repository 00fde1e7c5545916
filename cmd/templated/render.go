package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-templated/pkg/render"
)

// RenderCommand returns the command rendering one field
func RenderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a text field or text area for a record attribute",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Record type", Value: "user"},
			&cli.StringFlag{Name: "attribute", Aliases: []string{"a"}, Usage: "Attribute to render", Required: true},
			&cli.StringFlag{Name: "control", Usage: "text_field or text_area", Value: string(render.ControlTextField)},
			&cli.StringFlag{Name: "value", Usage: "Current attribute value (unset means nil)"},
			&cli.BoolFlag{Name: "no-script", Usage: "Omit the behaviour binding script"},
			&cli.BoolFlag{Name: "head", Usage: "Print the styling head markup first"},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	s, err := setup(c)
	if err != nil {
		return err
	}

	control := render.Control(c.String("control"))
	if control != render.ControlTextField && control != render.ControlTextArea {
		return fmt.Errorf("unsupported control %q", control)
	}

	attribute := c.String("attribute")
	rec := s.recordFor(c.String("type"), attribute)
	if c.IsSet("value") {
		value := c.String("value")
		if err := rec.WriteAttribute(attribute, &value); err != nil {
			return err
		}
	}

	var opts render.FieldOptions
	if c.Bool("no-script") {
		opts = render.WithoutScript()
	}

	markup, err := s.app.Render(backgroundContext(c), render.Request{
		Control:   control,
		Attribute: attribute,
		Record:    rec,
		Options:   opts,
	})
	if err != nil {
		return err
	}

	if c.Bool("head") {
		fmt.Fprintln(c.App.Writer, s.app.Head())
	}
	fmt.Fprintln(c.App.Writer, markup)
	return nil
}
