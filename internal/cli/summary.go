package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

type SummaryCmd struct {
	daily bool
}

func NewSummaryCmd() *SummaryCmd {
	return &SummaryCmd{}
}

func (c *SummaryCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print weekday or daily ride summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetAutoWrapText(false)
			table.SetBorder(false)

			if c.daily {
				table.SetHeader([]string{"Date", "Weekday", "Rides", "Avg Passengers", "Peak Hours", "Top Dropoff"})
				for _, s := range a.ds.DailySummaries() {
					table.Append(append([]string{s.Date, s.Weekday}, summaryRow(s.Summary)...))
				}
			} else {
				table.SetHeader([]string{"Day", "Rides", "Avg Passengers", "Peak Hours", "Top Dropoff"})
				for _, s := range a.ds.WeekdaySummaries() {
					table.Append(append([]string{s.Day}, summaryRow(s.Summary)...))
				}
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&c.daily, "daily", false, "summarize per calendar date instead of per weekday")
	return cmd
}

func summaryRow(s models.Summary) []string {
	hours := make([]string, 0, len(s.PeakHours))
	for _, h := range s.PeakHours {
		hours = append(hours, fmt.Sprintf("%d (%d)", h.Hour, h.Count))
	}
	top := "-"
	if len(s.TopDropoffs) > 0 {
		top = fmt.Sprintf("%s (%d)", s.TopDropoffs[0].Name, s.TopDropoffs[0].Count)
	}
	return []string{
		strconv.Itoa(s.TotalRides),
		strconv.FormatFloat(s.AvgPassengers, 'f', 2, 64),
		strings.Join(hours, ", "),
		top,
	}
}
