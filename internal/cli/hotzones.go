package cli

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

type HotzonesCmd struct {
	day  string
	hour string
}

func NewHotzonesCmd() *HotzonesCmd {
	return &HotzonesCmd{}
}

func (c *HotzonesCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotzones",
		Short: "Print the busiest drop-off locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			zones := stats.Hotzones(a.ds.Trips(), models.HotzoneFilter{Day: c.day, Hour: c.hour}, models.DefaultHotzoneLimit)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "Name", "Rides", "Lat", "Lng"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			for i, z := range zones {
				table.Append([]string{
					strconv.Itoa(i + 1),
					z.Name,
					strconv.Itoa(z.Count),
					strconv.FormatFloat(z.Lat, 'f', 5, 64),
					strconv.FormatFloat(z.Lng, 'f', 5, 64),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&c.day, "day", "", "weekday filter, e.g. friday")
	cmd.Flags().StringVar(&c.hour, "hour", "", "hour of day filter, 0-23")
	return cmd
}
