package commands

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/livefir/htmlview"
	"github.com/livefir/htmlview/internal/diff"
	"github.com/livefir/htmlview/internal/dom"
	"github.com/livefir/htmlview/internal/metrics"
)

// Patch reconciles the markup of one file with the markup of another and
// prints the patched result
func Patch(args []string, out io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.positional) != 2 {
		return fmt.Errorf("usage: patch <live.html> <incoming.html> [--dry-run]")
	}

	config, log, err := f.setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	liveHTML, err := os.ReadFile(f.positional[0])
	if err != nil {
		return fmt.Errorf("failed to read live markup: %w", err)
	}
	incomingHTML, err := os.ReadFile(f.positional[1])
	if err != nil {
		return fmt.Errorf("failed to read incoming markup: %w", err)
	}

	target, err := htmlview.TargetFromHTML("div", string(liveHTML))
	if err != nil {
		return fmt.Errorf("failed to parse live markup: %w", err)
	}

	if f.dryRun {
		incoming, err := dom.ParseFragment(string(incomingHTML), target.Node())
		if err != nil {
			return fmt.Errorf("failed to parse incoming markup: %w", err)
		}
		patches, summary := diff.Plan(target.Node(), incoming)
		printPatches(out, patches, summary)
		return nil
	}

	collector := metrics.NewCollector()
	gen := htmlview.GeneratorFunc(func(any) (string, error) {
		return string(incomingHTML), nil
	})
	view, err := htmlview.New(target, gen,
		htmlview.WithConfig(config),
		htmlview.WithLogger(log),
		htmlview.WithMetrics(collector))
	if err != nil {
		return err
	}

	if err := view.Update(f.positional[1]); err != nil {
		return err
	}

	printPatches(out, view.LastPatches(), view.LastSummary())
	printHeading(out, "Result")
	fmt.Fprintln(out, target.InnerHTML())

	log.Debug("patch complete", zap.Any("metrics", collector.GetMetrics()))
	return nil
}
