package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
)

type PredictCmd struct{}

func NewPredictCmd() *PredictCmd {
	return &PredictCmd{}
}

func (c *PredictCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "predict <text>",
		Short:   "Look up expected rides for a weekday and hour",
		Example: `  rideshare predict "friday 8pm"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			day, hour := predictor.ParseDayHour(strings.Join(args, " "))
			p := a.ds.Demand().Predict(day, hour)
			a.log.Debug("prediction", "day", p.Day, "hour", p.Hour, "status", p.Status)
			fmt.Fprintln(cmd.OutOrStdout(), p.Message())
			return nil
		},
	}
	return cmd
}
