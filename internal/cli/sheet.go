package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"garage/internal/records"
	"garage/internal/services"
)

func newSheetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "View and edit the maintenance sheet",
	}
	cmd.AddCommand(
		newSheetShowCmd(a),
		newSheetColumnsCmd(a),
		newSheetAddCmd(a),
		newSheetEditCmd(a),
		newSheetDeleteCmd(a),
	)
	return cmd
}

func newSheetShowCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the sheet with recency colouring and cost totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			rows, sum := s.View(search, a.now())
			t := s.Table()
			renderSheet(cmd.OutOrStdout(), t.Headers(), t.Classification(), rows, sum, a.palette())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "show only rows containing this text (case-insensitive)")
	return cmd
}

func newSheetColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Show the role inferred for each column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			t := s.Table()
			renderColumns(cmd.OutOrStdout(), t.Headers(), t.Classification(), a.palette())
			return nil
		},
	}
}

func newSheetAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add VALUE...",
		Short: "Append a row, one value per column, and save",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutateSheet(cmd, func(s *services.TableSession) (string, error) {
				i, _, err := s.Table().Insert(records.TextRow(args...))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added row %d", i+1), nil
			})
		},
	}
}

func newSheetEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ROW VALUE...",
		Short: "Replace a row, one value per column, and save",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRowNumber(args[0])
			if err != nil {
				return err
			}
			return a.mutateSheet(cmd, func(s *services.TableSession) (string, error) {
				if err := s.Table().Update(index, records.TextRow(args[1:]...)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated row %d", index+1), nil
			})
		},
	}
}

func newSheetDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ROW",
		Short: "Remove a row and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRowNumber(args[0])
			if err != nil {
				return err
			}
			return a.mutateSheet(cmd, func(s *services.TableSession) (string, error) {
				if err := s.Table().Delete(index); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted row %d", index+1), nil
			})
		},
	}
}

// mutateSheet loads the sheet, applies edit and saves the whole table back.
func (a *app) mutateSheet(cmd *cobra.Command, edit func(*services.TableSession) (string, error)) error {
	ctx := cmd.Context()
	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	msg, err := edit(s)
	if err != nil {
		return err
	}
	if err := s.Save(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
