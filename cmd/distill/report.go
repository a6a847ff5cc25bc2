package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sarchlab/distill/datarecording"
)

var reportCmd = &cobra.Command{
	Use:   "report <recording.sqlite3>",
	Short: "Summarize the transfer attempts stored in a recording.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return err
		}

		reader := datarecording.NewReader(args[0])
		defer reader.Close()

		return report(cmd.Context(), cmd.OutOrStdout(), reader)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

type attemptSummary struct {
	tower    string
	recipe   string
	distills int
	drained  int
	rejects  map[string]int
}

func report(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader.MapTable(datarecording.DistillationTable,
		datarecording.DistillationEntry{})

	rows, total, err := reader.Query(ctx, datarecording.DistillationTable,
		datarecording.QueryParams{OrderBy: "Tick"})
	if err != nil {
		return err
	}

	summaries := make(map[[2]string]*attemptSummary)
	var order [][2]string

	for _, row := range rows {
		e := row.(*datarecording.DistillationEntry)

		key := [2]string{e.Tower, e.Recipe}
		s, ok := summaries[key]
		if !ok {
			s = &attemptSummary{
				tower:   e.Tower,
				recipe:  e.Recipe,
				rejects: make(map[string]int),
			}
			summaries[key] = s
			order = append(order, key)
		}

		if e.OK {
			s.distills++
			s.drained += e.Drained

			continue
		}

		s.rejects[e.Reason]++
	}

	fmt.Fprintf(out, "%d transfer attempts\n", total)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Tower", "Recipe", "Distilled", "Drained",
		"Rejected"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, key := range order {
		s := summaries[key]
		table.Append([]string{
			s.tower,
			orDash(s.recipe),
			strconv.Itoa(s.distills),
			strconv.Itoa(s.drained),
			formatRejects(s.rejects),
		})
	}

	table.Render()

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

func formatRejects(rejects map[string]int) string {
	reasons := make([]string, 0, len(rejects))
	for reason := range rejects {
		reasons = append(reasons, reason)
	}

	slices.Sort(reasons)

	text := ""
	for i, reason := range reasons {
		if i > 0 {
			text += ", "
		}

		text += fmt.Sprintf("%s x%d", reason, rejects[reason])
	}

	return orDash(text)
}
