package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bodylog/internal/domain"
)

var (
	bmiWeight string
	bmiHeight string
)

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Compute body-mass index from weight (kg) and height (cm)",
	Example: `  bodylog bmi --weight 70 --height 175
  bodylog bmi --weight 70,5 --height 175`,
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := domain.ParseDecimalInput(bmiWeight)
		if err != nil {
			return fmt.Errorf("weight %q: %w", bmiWeight, err)
		}
		height, err := domain.ParseDecimalInput(bmiHeight)
		if err != nil {
			return fmt.Errorf("height %q: %w", bmiHeight, err)
		}
		bmi, err := domain.ComputeBMI(weight, height)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "BMI %.1f (%s)\n", bmi, domain.ClassifyBMI(bmi))
		return nil
	},
}

func init() {
	bmiCmd.Flags().StringVar(&bmiWeight, "weight", "", "Weight in kilograms")
	bmiCmd.Flags().StringVar(&bmiHeight, "height", "", "Height in centimeters")
	_ = bmiCmd.MarkFlagRequired("weight")
	_ = bmiCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(bmiCmd)
}
