package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bodylog/internal/domain"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print all measurements and meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		return writeExport(cmd.OutOrStdout(), exportFormat, exportDocument{
			Metrics: svc.measurements.Snapshot(),
			Meals:   svc.meals.List(),
		})
	},
}

type exportDocument struct {
	Metrics domain.Dataset `json:"metrics" yaml:"metrics"`
	Meals   []domain.Meal  `json:"meals" yaml:"meals"`
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}
