package commands

import (
	"fmt"
	"io"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/net/html"

	"github.com/livefir/htmlview"
	"github.com/livefir/htmlview/examples/recipe"
)

// Demo renders a generated recipe, doubles its servings with an in-place
// update and prints both states
func Demo(args []string, out io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	config, log, err := f.setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	r := recipe.Fake(gofakeit.New(f.seed))

	target := htmlview.NewTarget("div", html.Attribute{Key: "class", Val: "recipe"})
	view, err := htmlview.New(target, &recipe.View{IconsURL: config.IconsURL},
		htmlview.WithConfig(config),
		htmlview.WithLogger(log))
	if err != nil {
		return err
	}

	if err := view.RenderSpinner(); err != nil {
		return err
	}
	if err := view.Attach(r); err != nil {
		return err
	}
	printHeading(out, fmt.Sprintf("Rendered %q (%d servings)", r.Title, r.Servings))
	fmt.Fprintln(out, target.InnerHTML())

	if err := view.Update(r.WithServings(r.Servings * 2)); err != nil {
		return err
	}
	printPatches(out, view.LastPatches(), view.LastSummary())
	printHeading(out, "Updated")
	fmt.Fprintln(out, target.InnerHTML())
	return nil
}
