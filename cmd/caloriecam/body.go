package caloriecam

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
	"github.com/spf13/cobra"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Track weight and body measurements",
}

var bodyShowJSON bool

var bodyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show BMI, latest weight, and body shape",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			view, err := c.Body()
			if err != nil {
				return err
			}
			if bodyShowJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			lang, err := displayLanguage(c.Language())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if view.BMI.Value > 0 {
				fmt.Fprintf(out, "BMI: %.1f (%s)\n", view.BMI.Value, i18n.T(lang, "bmi."+view.BMI.Category))
			} else {
				fmt.Fprintln(out, "BMI: -")
			}
			if view.LatestWeight != nil {
				fmt.Fprintf(out, "Weight: %.1f kg on %s\n", view.LatestWeight.WeightKg, view.LatestWeight.Date)
			}
			if view.LatestMeasurement != nil {
				m := view.LatestMeasurement
				fmt.Fprintf(out, "Measurements on %s: waist %.1f cm, hip %.1f cm%s\n", m.Date, m.WaistCm, m.HipCm, optionalMeasurements(m))
				fmt.Fprintf(out, "Body shape: %s\n", i18n.T(lang, "shape."+view.Shape))
			}
			return nil
		})
	},
}

func optionalMeasurements(m *model.MeasurementsEntry) string {
	var parts []string
	for _, f := range []struct {
		name string
		v    *float64
	}{{"chest", m.ChestCm}, {"neck", m.NeckCm}, {"thigh", m.ThighCm}, {"arm", m.ArmCm}} {
		if f.v != nil {
			parts = append(parts, fmt.Sprintf("%s %.1f cm", f.name, *f.v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return ", " + strings.Join(parts, ", ")
}

var bodyWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Record and list weights",
}

var (
	weightDate string
	weightKg   float64
	weightJSON bool
)

var bodyWeightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a weight (replaces any weight on the same date)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(weightDate)
		if err != nil {
			return err
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			saved, err := c.SaveWeight(model.WeightEntry{Date: service.DateKey(date), WeightKg: weightKg})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f kg on %s\n", saved.WeightKg, saved.Date)
			return nil
		})
	},
}

var bodyWeightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weights, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListWeights(sqldb)
			if err != nil {
				return err
			}
			if weightJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tKG\tID")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t%s\n", it.Date, it.WeightKg, it.ID)
			}
			return nil
		})
	},
}

var bodyMeasureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Record and list body measurements",
}

var (
	measureDate  string
	measureWaist float64
	measureHip   float64
	measureChest float64
	measureNeck  float64
	measureThigh float64
	measureArm   float64
	measureJSON  bool
)

var bodyMeasureAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record measurements in cm (replaces any set on the same date)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(measureDate)
		if err != nil {
			return err
		}
		entry := model.MeasurementsEntry{Date: service.DateKey(date), WaistCm: measureWaist, HipCm: measureHip}
		flags := cmd.Flags()
		if flags.Changed("chest") {
			entry.ChestCm = &measureChest
		}
		if flags.Changed("neck") {
			entry.NeckCm = &measureNeck
		}
		if flags.Changed("thigh") {
			entry.ThighCm = &measureThigh
		}
		if flags.Changed("arm") {
			entry.ArmCm = &measureArm
		}
		return withController(func(sqldb *sql.DB, c *controller.Controller) error {
			saved, err := c.SaveMeasurements(entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded measurements on %s\n", saved.Date)
			return nil
		})
	},
}

var bodyMeasureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List measurements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListMeasurements(sqldb)
			if err != nil {
				return err
			}
			if measureJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWAIST\tHIP\tSHAPE")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t%.1f\t%s\n", it.Date, it.WaistCm, it.HipCm, service.ClassifyBodyShape(it))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyShowCmd, bodyWeightCmd, bodyMeasureCmd)
	bodyWeightCmd.AddCommand(bodyWeightAddCmd, bodyWeightListCmd)
	bodyMeasureCmd.AddCommand(bodyMeasureAddCmd, bodyMeasureListCmd)

	bodyShowCmd.Flags().BoolVar(&bodyShowJSON, "json", false, "Output as JSON")

	bodyWeightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	bodyWeightAddCmd.Flags().Float64Var(&weightKg, "kg", 0, "Weight in kilograms")
	_ = bodyWeightAddCmd.MarkFlagRequired("kg")
	bodyWeightListCmd.Flags().BoolVar(&weightJSON, "json", false, "Output as JSON")

	bodyMeasureAddCmd.Flags().StringVar(&measureDate, "date", "", "Date YYYY-MM-DD (default today)")
	bodyMeasureAddCmd.Flags().Float64Var(&measureWaist, "waist", 0, "Waist circumference")
	bodyMeasureAddCmd.Flags().Float64Var(&measureHip, "hip", 0, "Hip circumference")
	bodyMeasureAddCmd.Flags().Float64Var(&measureChest, "chest", 0, "Chest circumference")
	bodyMeasureAddCmd.Flags().Float64Var(&measureNeck, "neck", 0, "Neck circumference")
	bodyMeasureAddCmd.Flags().Float64Var(&measureThigh, "thigh", 0, "Thigh circumference")
	bodyMeasureAddCmd.Flags().Float64Var(&measureArm, "arm", 0, "Arm circumference")
	_ = bodyMeasureAddCmd.MarkFlagRequired("waist")
	_ = bodyMeasureAddCmd.MarkFlagRequired("hip")
	bodyMeasureListCmd.Flags().BoolVar(&measureJSON, "json", false, "Output as JSON")
}
