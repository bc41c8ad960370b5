package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/matchtrack/internal/broadcast"
)

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the merged broadcast feed, most recent first",
		Long: `Merge matching nights and matchboxes into one chronological feed
ordered by resolved broadcast instant, most recent first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(rootOpts, cmd)
		},
	}
	return cmd
}

// timelineEntry is the JSON projection of one feed element.
type timelineEntry struct {
	Kind    string `json:"kind"`
	Instant string `json:"instant"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
}

func runTimeline(opts *RootOptions, cmd *cobra.Command) error {
	st, r, err := openRepository(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := r.Timeline(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "loading timeline", err)
	}

	formatter := opts.formatter(cmd)
	if formatter.Format == "json" {
		out := make([]timelineEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, projectEntry(e))
		}
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "no broadcasts recorded")
		return nil
	}
	for _, e := range entries {
		p := projectEntry(e)
		line := fmt.Sprintf("%s  %-14s  %s", p.Instant, p.Kind, p.Title)
		if p.Detail != "" {
			line += "  (" + p.Detail + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func projectEntry(e broadcast.Entry) timelineEntry {
	out := timelineEntry{
		Kind:    string(e.Kind),
		Instant: e.Instant.Format("2006-01-02 15:04"),
	}
	switch {
	case e.Night != nil:
		out.Title = e.Night.Name
		out.Detail = fmt.Sprintf("%d lights", e.Night.TotalLights)
	case e.Box != nil:
		out.Title = e.Box.Woman + " & " + e.Box.Man
		detail := string(e.Box.MatchType)
		if e.Box.Price != nil {
			detail += ", " + e.Box.Price.String()
		}
		out.Detail = detail
	}
	out.Title = strings.TrimSpace(out.Title)
	return out
}
