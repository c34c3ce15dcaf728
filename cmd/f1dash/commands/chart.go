package commands

import (
	"fmt"

	"f1dash/internal/chart"

	"github.com/spf13/cobra"
)

func chartCmd(app *appContext) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:       "chart wins|points",
		Short:     "Print a dashboard chart",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"wins", "points"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var c *chart.BarChart
			switch args[0] {
			case "wins":
				drivers, err := app.client.TopDriversByWins(cmd.Context())
				if err != nil {
					return err
				}
				c = chart.DriverWins(drivers)
			case "points":
				standings, err := app.client.ConstructorStandings(cmd.Context())
				if err != nil {
					return err
				}
				c = chart.ConstructorPoints(standings)
			}
			if c == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "no data")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), chart.RenderText(c, width))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "output width in columns")
	return cmd
}
