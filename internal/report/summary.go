// Package report prints a human-readable summary of a load.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"trajviz/internal/loader"
	"trajviz/internal/trajectory"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	causeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Options tune the summary layout.
type Options struct {
	// Width wraps rejection causes; 0 disables wrapping.
	Width int
}

// Summary writes accepted agents, rejected entries and totals to w.
func Summary(w io.Writer, res *loader.Result, opts Options) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headingStyle.Render("Agents"))
	if len(res.Trajectories) == 0 {
		b.WriteString("  (none accepted)\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  NAME\tORDER\tSAFETY\tSEGMENTS\tPOINTS\tSPAN\tIDLE/SCHED/EVASIVE\n")
		for _, t := range res.Trajectories {
			idle, sched, evasive := kindCounts(t)
			fmt.Fprintf(tw, "  %s\t%d\t%.2f\t%d\t%d\t%s\t%d/%d/%d\n",
				t.Config.Name, t.Config.Order, t.Config.SafetyMargin,
				len(t.Segments), t.PointCount(), span(t), idle, sched, evasive)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(res.Rejections) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Rejected entries"))
		for _, rj := range res.Rejections {
			label := rj.Agent
			if label == "" {
				label = "<unnamed>"
			}
			fmt.Fprintf(&b, "  #%d %s\n", rj.Index, rejectedStyle.Render(label))
			cause := rj.Err.Error()
			if opts.Width > 6 {
				cause = wordwrap.String(cause, opts.Width-6)
			}
			for _, line := range strings.Split(cause, "\n") {
				fmt.Fprintf(&b, "      %s\n", causeStyle.Render(line))
			}
		}
	}

	fmt.Fprintf(&b, "\n%s of %d entries accepted, %s\n",
		acceptedStyle.Render(fmt.Sprintf("%d", res.Accepted())),
		res.Total(),
		rejectedStyle.Render(fmt.Sprintf("%d rejected", res.Rejected())))

	_, err := io.WriteString(w, b.String())
	return err
}

// kindCounts returns the number of segments of each kind.
func kindCounts(t trajectory.AgentTrajectory) (idle, scheduled, evasive int) {
	for _, s := range t.Segments {
		switch s.Kind {
		case trajectory.Idle:
			idle++
		case trajectory.Scheduled:
			scheduled++
		case trajectory.Evasive:
			evasive++
		}
	}
	return idle, scheduled, evasive
}

func span(t trajectory.AgentTrajectory) string {
	start, end, ok := t.TimeSpan()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%g..%g", start, end)
}
