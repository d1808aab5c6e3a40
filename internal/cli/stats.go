// Stats command: aggregate playbook counts.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// topPatternCount is how many top-scored patterns stats displays.
const topPatternCount = 3

// statsReport is the JSON output shape of the stats command.
type statsReport struct {
	Patterns      int             `json:"patterns"`
	ByCategory    map[string]int  `json:"by_category"`
	Helpful       int             `json:"helpful"`
	Harmful       int             `json:"harmful"`
	TaskSuccesses int             `json:"task_successes"`
	TaskFailures  int             `json:"task_failures"`
	Top           []types.Pattern `json:"top"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show playbook statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			doc, err := s.Load()
			if err != nil && !errors.Is(err, types.ErrNotFound) {
				return err
			}

			return printStats(cmd, doc)
		},
	}
}

func printStats(cmd *cobra.Command, doc *types.Document) error {
	out := cmd.OutOrStdout()
	report := buildStats(doc)

	if flags.jsonMode {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if report.Patterns == 0 {
		fmt.Fprintln(out, "No patterns learned yet.")
		return nil
	}

	var cats []string
	for _, cat := range types.Categories {
		if n := report.ByCategory[cat]; n > 0 {
			cats = append(cats, fmt.Sprintf("%s(%d)", cat, n))
		}
	}

	fmt.Fprintf(out, "Playbook: %d patterns\n", report.Patterns)
	fmt.Fprintf(out, "Categories: %s\n", strings.Join(cats, ", "))
	fmt.Fprintf(out, "Feedback: +%d/-%d\n", report.Helpful, report.Harmful)
	fmt.Fprintf(out, "Tasks: %d successes, %d failures\n", report.TaskSuccesses, report.TaskFailures)

	if len(report.Top) > 0 {
		fmt.Fprintln(out, "\nTop patterns:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, p := range report.Top {
			content := p.Content
			if len(content) > 60 {
				content = content[:57] + "..."
			}
			fmt.Fprintf(w, "  %s\tscore=%d\t%s\n", p.ID, p.Score(), content)
		}
		w.Flush()
	}
	return nil
}

// buildStats aggregates document counters into a statsReport.
func buildStats(doc *types.Document) statsReport {
	report := statsReport{
		Patterns:      len(doc.Patterns),
		ByCategory:    doc.CountByCategory(),
		TaskSuccesses: doc.TaskSuccesses,
		TaskFailures:  doc.TaskFailures,
		Top:           []types.Pattern{},
	}
	for i := range doc.Patterns {
		report.Helpful += doc.Patterns[i].Successes
		report.Harmful += doc.Patterns[i].Failures
	}

	top := make([]types.Pattern, len(doc.Patterns))
	copy(top, doc.Patterns)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score() > top[j].Score()
	})
	if len(top) > topPatternCount {
		top = top[:topPatternCount]
	}
	report.Top = top
	return report
}
