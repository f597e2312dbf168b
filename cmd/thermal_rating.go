package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/thermal"
	"github.com/catenarytools/sagtension/internal/unit"
	"github.com/spf13/cobra"
)

var (
	thermalDiameter       float64
	thermalAbsorptivity   float64
	thermalEmissivity     float64
	thermalResistanceLowT float64
	thermalResistanceLowR float64
	thermalResistHighT    float64
	thermalResistHighR    float64
	thermalAllowedTemp    float64
	thermalWindSpeed      float64
	thermalWindAngle      float64
	thermalAirTemp        float64
	thermalElevation      float64
	thermalSolar          float64
	thermalCableFile      string
)

var thermalRatingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Solve the steady-state current rating for an allowed temperature",
	Long: `Solve the steady-state current a conductor can carry before reaching
an allowed maximum temperature, under a specified weather condition.

Example:
  sagtension thermal rating --diameter 1.108 --allowed-temp 100 \
    --wind-speed 2 --air-temp 40`,
	Run: runThermalRating,
}

func init() {
	thermalCmd.AddCommand(thermalRatingCmd)

	f := thermalRatingCmd.Flags()
	f.Float64Var(&thermalDiameter, "diameter", 1.108, "Cable outer diameter (in)")
	f.Float64Var(&thermalAbsorptivity, "absorptivity", 0.8, "Solar absorptivity [0,1]")
	f.Float64Var(&thermalEmissivity, "emissivity", 0.8, "Emissivity [0,1]")
	f.Float64Var(&thermalResistanceLowT, "resistance-low-temp", 77, "AC resistance table: lower temperature (F)")
	f.Float64Var(&thermalResistanceLowR, "resistance-low-value", 0.1166, "AC resistance table: resistance at the lower temperature (ohm/mi)")
	f.Float64Var(&thermalResistHighT, "resistance-high-temp", 167, "AC resistance table: higher temperature (F)")
	f.Float64Var(&thermalResistHighR, "resistance-high-value", 0.1390, "AC resistance table: resistance at the higher temperature (ohm/mi)")
	f.Float64Var(&thermalAllowedTemp, "allowed-temp", 100, "Allowed steady-state conductor temperature (F) [required]")
	f.Float64Var(&thermalWindSpeed, "wind-speed", 2, "Wind speed (ft/s)")
	f.Float64Var(&thermalWindAngle, "wind-angle", 90, "Wind angle from the conductor axis (degrees, [0,90])")
	f.Float64Var(&thermalAirTemp, "air-temp", 40, "Ambient air temperature (F)")
	f.Float64Var(&thermalElevation, "elevation", 0, "Elevation above sea level (ft)")
	f.Float64Var(&thermalSolar, "solar", 90, "Total solar and sky radiated heat flux (W/ft²)")
	f.StringVar(&thermalCableFile, "cable-file", "", "Load the cable definition from a JSON file instead of the material flags")

	thermalRatingCmd.MarkFlagRequired("allowed-temp")
}

func runThermalRating(cmd *cobra.Command, args []string) {
	c := cable.Cable{
		Name:         "cli cable",
		Diameter:     unit.ConvertLength(thermalDiameter, unit.InchesToFeet, 1, true),
		Absorptivity: thermalAbsorptivity,
		Emissivity:   thermalEmissivity,
		ResistancesAC: []cable.ResistancePoint{
			{Temperature: thermalResistanceLowT, Resistance: unit.ConvertLength(thermalResistanceLowR, unit.MilesToFeet, 1, false)},
			{Temperature: thermalResistHighT, Resistance: unit.ConvertLength(thermalResistHighR, unit.MilesToFeet, 1, false)},
		},
	}
	if thermalCableFile != "" {
		loaded, err := cable.LoadFromFile(thermalCableFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		c = *loaded
	}
	weather := thermal.Weather{
		AngleWind:      thermalWindAngle,
		Elevation:      thermalElevation,
		RadiationSolar: thermalSolar,
		SpeedWind:      thermalWindSpeed,
		TemperatureAir: thermalAirTemp,
	}

	solver := thermal.SteadyCurrentSolver{
		Cable:            c,
		TemperatureCable: thermalAllowedTemp,
		Units:            unit.Imperial,
		Weather:          weather,
	}
	current, ok := solver.Current()
	if !ok {
		fmt.Println("Error: the thermal rating did not converge")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Allowed conductor temperature:\t%.1f F\n", thermalAllowedTemp)
	fmt.Fprintf(w, "  Ambient air temperature:\t%.1f F\n", thermalAirTemp)
	fmt.Fprintf(w, "  Wind:\t%.1f ft/s at %.0f°\n", thermalWindSpeed, thermalWindAngle)
	fmt.Fprintf(w, "  Steady-state current rating:\t%.1f A\n", current)
	w.Flush()
}
