package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"garage/internal/adapters"
	"garage/internal/core"
	"garage/internal/services"
)

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage a vehicle's maintenance records",
	}
	cmd.AddCommand(
		newRecordListCmd(a),
		newRecordAddCmd(a),
		newRecordEditCmd(a),
		newRecordDeleteCmd(a),
	)
	return cmd
}

func newRecordListCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list VEHICLE_ID",
		Short: "List a vehicle's records, newest first, with cost totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := parseID(args[0], "vehicle id")
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			v, err := res.Records.Vehicle(ctx, vehicleID)
			if err != nil {
				return err
			}
			s, err := services.OpenSession(ctx, adapters.NewVehicleTable(res.Repo, vehicleID), a.policy())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (#%d)\n", v.Label(), v.ID)
			rows, sum := s.View(search, a.now())
			t := s.Table()
			renderSheet(out, t.Headers(), t.Classification(), rows, sum, a.palette())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "show only records containing this text (case-insensitive)")
	return cmd
}

type recordFlags struct {
	date, serviceType, cost, mileage, provider, notes string
}

// toRecord validates the entry fields. Cost uses the strict entry format;
// commas are thousands separators.
func (f recordFlags) toRecord(vehicleID int64) (core.MaintenanceRecord, error) {
	date, ok := core.ParseDate(f.date)
	if !ok {
		return core.MaintenanceRecord{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or MM/DD/YYYY", f.date)
	}
	rec := core.MaintenanceRecord{
		VehicleID:   vehicleID,
		ServiceDate: date,
		ServiceType: strings.TrimSpace(f.serviceType),
		Provider:    strings.TrimSpace(f.provider),
		Notes:       strings.TrimSpace(f.notes),
	}
	if f.cost != "" {
		amount := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(f.cost), "$"), ",", "")
		cents, err := core.ParseDecimalToCents(amount)
		if err != nil {
			return core.MaintenanceRecord{}, fmt.Errorf("invalid cost %q: %w", f.cost, err)
		}
		rec.Cost = &core.Money{Cents: cents}
	}
	if f.mileage != "" {
		m, err := strconv.ParseInt(strings.ReplaceAll(f.mileage, ",", ""), 10, 64)
		if err != nil {
			return core.MaintenanceRecord{}, fmt.Errorf("invalid mileage %q: must be a whole number", f.mileage)
		}
		rec.Distance = &m
	}
	return rec, nil
}

func newRecordAddCmd(a *app) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "add VEHICLE_ID",
		Short: "Store a maintenance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := parseID(args[0], "vehicle id")
			if err != nil {
				return err
			}
			rec, err := f.toRecord(vehicleID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			id, err := res.Records.AddRecord(ctx, rec)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added record %d: %s on %s\n", id, rec.ServiceType, rec.ServiceDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.date, "date", "", "service date, YYYY-MM-DD or MM/DD/YYYY (required)")
	cmd.Flags().StringVar(&f.serviceType, "type", "", "service type, e.g. \"Oil Change\" (required)")
	cmd.Flags().StringVar(&f.cost, "cost", "", "cost in dollars, e.g. 45.99")
	cmd.Flags().StringVar(&f.mileage, "mileage", "", "odometer reading")
	cmd.Flags().StringVar(&f.provider, "provider", "", "shop or provider")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newRecordEditCmd(a *app) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "edit VEHICLE_ID RECORD_ID",
		Short: "Change a stored record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := parseID(args[0], "vehicle id")
			if err != nil {
				return err
			}
			recordID, err := parseID(args[1], "record id")
			if err != nil {
				return err
			}
			rec, err := f.toRecord(vehicleID)
			if err != nil {
				return err
			}
			rec.ID = recordID
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			return res.Records.EditRecord(ctx, rec)
		},
	}
	cmd.Flags().StringVar(&f.date, "date", "", "service date, YYYY-MM-DD or MM/DD/YYYY (required)")
	cmd.Flags().StringVar(&f.serviceType, "type", "", "service type (required)")
	cmd.Flags().StringVar(&f.cost, "cost", "", "cost in dollars")
	cmd.Flags().StringVar(&f.mileage, "mileage", "", "odometer reading")
	cmd.Flags().StringVar(&f.provider, "provider", "", "shop or provider")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newRecordDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete VEHICLE_ID RECORD_ID",
		Short: "Remove a stored record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := parseID(args[0], "vehicle id")
			if err != nil {
				return err
			}
			recordID, err := parseID(args[1], "record id")
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			return res.Records.DeleteRecord(ctx, vehicleID, recordID)
		},
	}
}
