package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"garage/internal/services"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import VEHICLE_ID",
		Short: "Copy the configured sheet into a vehicle's relational records",
		Long: `Reads every row of the configured sheet and stores one maintenance record
per row that has a usable date. Columns are matched by header keywords: date;
service or type; cost or price; mile or odometer; provider or shop; note or
description. Either every record is stored or none is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, err := parseID(args[0], "vehicle id")
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			source, err := a.tableStore(ctx)
			if err != nil {
				return err
			}
			res, err := a.openLog(ctx)
			if err != nil {
				return err
			}
			defer a.closeLog(res)

			report, err := services.NewImporter(source, res.Repo, res.Repo).Import(ctx, vehicleID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Imported %d records, skipped %d\n", report.Imported, report.Skipped)
			if len(report.SkippedRows) > 0 {
				rows := make([]string, len(report.SkippedRows))
				for i, r := range report.SkippedRows {
					rows[i] = strconv.Itoa(r)
				}
				_, _ = fmt.Fprintf(out, "Rows without a valid date: %s\n", strings.Join(rows, ", "))
			}
			return nil
		},
	}
}
