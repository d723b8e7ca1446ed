package cli

import (
	"github.com/spf13/cobra"
)

func newUpcomingCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "upcoming [VEHICLE_ID]",
		Short: "Show when each maintenance type was last done and when it is next due",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			out := cmd.OutOrStdout()
			p := a.palette()
			now := a.now()

			if all || len(args) == 0 {
				projections, err := res.Projector.UpcomingAll(ctx)
				if err != nil {
					return err
				}
				for i, vu := range projections {
					if i > 0 {
						_, _ = out.Write([]byte("\n"))
					}
					renderUpcoming(out, vu.Vehicle, vu.Services, now, p)
				}
				if len(projections) == 0 {
					_, _ = out.Write([]byte("(no vehicles)\n"))
				}
				return nil
			}

			vehicleID, err := parseID(args[0], "vehicle id")
			if err != nil {
				return err
			}
			v, err := res.Records.Vehicle(ctx, vehicleID)
			if err != nil {
				return err
			}
			ups, err := res.Projector.Upcoming(ctx, vehicleID)
			if err != nil {
				return err
			}
			renderUpcoming(out, v, ups, now, p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "project every vehicle")
	return cmd
}
