package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bodylog/internal/domain"
)

var addDate string

var addCmd = &cobra.Command{
	Use:   "add <metric> <value>",
	Short: "Record a measurement",
	Example: `  bodylog add weight 70,5
  bodylog add waist 82 --date 2024-01-15`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := domain.Metric(args[0])
		value, err := domain.ParseDecimalInput(args[1])
		if err != nil {
			return fmt.Errorf("value %q: %w", args[1], err)
		}
		var date time.Time
		if addDate != "" {
			date, err = time.Parse(time.DateOnly, addDate)
			if err != nil {
				return fmt.Errorf("date %q: %w", addDate, err)
			}
		}

		svc, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		entry, err := svc.measurements.AddEntry(cmd.Context(), metric, value, date)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %g @ %s\n", metric, entry.ID, entry.Value, entry.Date.Format(time.RFC3339))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Measurement date as YYYY-MM-DD (default now)")
	rootCmd.AddCommand(addCmd)
}
