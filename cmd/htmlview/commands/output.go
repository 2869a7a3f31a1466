package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/livefir/htmlview"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	textOpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	attrOpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printHeading(out io.Writer, title string) {
	fmt.Fprintln(out, headingStyle.Render(title))
}

func printPatches(out io.Writer, patches []htmlview.Patch, summary htmlview.Summary) {
	printHeading(out, fmt.Sprintf("Patches (%d)", len(patches)))
	for _, p := range patches {
		style := textOpStyle
		if p.Op == htmlview.PatchSetAttr {
			style = attrOpStyle
		}
		fmt.Fprintf(out, "  %s\n", style.Render(p.String()))
	}

	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(
		"  live=%d incoming=%d visited=%d skipped=%d",
		summary.LiveNodes, summary.IncomingNodes, summary.Visited, summary.Skipped)))
}
