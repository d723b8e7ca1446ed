package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"garage/internal/core"
)

func newVehicleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage vehicles",
	}
	cmd.AddCommand(newVehicleAddCmd(a), newVehicleListCmd(a))
	return cmd
}

func newVehicleAddCmd(a *app) *cobra.Command {
	var v core.Vehicle
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			v.VIN = strings.TrimSpace(v.VIN)
			id, err := res.Records.AddVehicle(ctx, v)
			if err != nil {
				return err
			}
			v.ID = id
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added vehicle %d: %s\n", id, v.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&v.Make, "make", "", "manufacturer (required)")
	cmd.Flags().StringVar(&v.Model, "model", "", "model (required)")
	cmd.Flags().IntVar(&v.Year, "year", 0, "model year (required)")
	cmd.Flags().StringVar(&v.VIN, "vin", "", "vehicle identification number, unique when set")
	_ = cmd.MarkFlagRequired("make")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newVehicleListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			vehicles, err := res.Records.ListVehicles(ctx)
			if err != nil {
				return err
			}
			renderVehicles(cmd.OutOrStdout(), vehicles, a.palette())
			return nil
		},
	}
}
