package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/elongation"
	"github.com/catenarytools/sagtension/internal/sagtension"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/spf13/cobra"
)

var (
	reloadSpan             float64
	reloadArea             float64
	reloadWeight           float64
	reloadCoreCreep        []float64
	reloadCoreLoadStrain   []float64
	reloadCoreExpansion    float64
	reloadShellCreep       []float64
	reloadShellLoadStrain  []float64
	reloadShellExpansion   float64
	reloadModulusCoreComp  float64
	reloadModulusCoreTens  float64
	reloadModulusShellComp float64
	reloadModulusShellTens float64
	reloadReferenceTension float64
	reloadReferenceTemp    float64
	reloadReloadedTemp     float64
	reloadCableFile        string
)

var sagtensionReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Solve the horizontal tension at a new temperature condition",
	Long: `Given a cable strung at a reference horizontal tension and temperature,
solve the horizontal tension it settles at once re-stretched to a new
temperature, its unloaded length held fixed.

The material coefficients default to the ACSR "Drake" conductor's core
and shell elongation curves.

Example:
  sagtension sagtension reload --span 1200 --reference-tension 6000 \
    --reference-temp 60 --reloaded-temp 0`,
	Run: runSagtensionReload,
}

func init() {
	sagtensionCmd.AddCommand(sagtensionReloadCmd)

	const area = 0.7264
	f := sagtensionReloadCmd.Flags()
	f.Float64Var(&reloadSpan, "span", 1200, "Ruling span (ft)")
	f.Float64Var(&reloadArea, "area", area, "Cable physical area (in²)")
	f.Float64VarP(&reloadWeight, "weight", "w", 1.094, "Bare cable unit weight (lb/ft)")
	f.Float64SliceVar(&reloadCoreCreep, "core-creep", []float64{47.1 * area, 36211.3 * area, 12201.4 * area, -72392 * area, 46338 * area}, "Core creep polynomial coefficients")
	f.Float64SliceVar(&reloadCoreLoadStrain, "core-load-strain", []float64{-69.3 * area, 38629 * area, 3998.1 * area, -45713 * area, 27892 * area}, "Core load-strain polynomial coefficients")
	f.Float64Var(&reloadCoreExpansion, "core-expansion", 0.0000064, "Core linear thermal expansion coefficient")
	f.Float64Var(&reloadModulusCoreComp, "core-modulus-compression", 0, "Core compression elastic-area modulus")
	f.Float64Var(&reloadModulusCoreTens, "core-modulus-tension", 37000*area*100, "Core tension elastic-area modulus")
	f.Float64SliceVar(&reloadShellCreep, "shell-creep", []float64{-544.8 * area, 21426.8 * area, -18842.2 * area, 5495 * area, 0}, "Shell creep polynomial coefficients")
	f.Float64SliceVar(&reloadShellLoadStrain, "shell-load-strain", []float64{-1213 * area, 44308.1 * area, -14004.4 * area, -37618 * area, 30676 * area}, "Shell load-strain polynomial coefficients")
	f.Float64Var(&reloadShellExpansion, "shell-expansion", 0.0000128, "Shell linear thermal expansion coefficient")
	f.Float64Var(&reloadModulusShellComp, "shell-modulus-compression", 1500*area*100, "Shell compression elastic-area modulus")
	f.Float64Var(&reloadModulusShellTens, "shell-modulus-tension", 64000*area*100, "Shell tension elastic-area modulus")
	f.Float64Var(&reloadReferenceTension, "reference-tension", 6000, "Reference horizontal tension (lb) [required]")
	f.Float64Var(&reloadReferenceTemp, "reference-temp", 60, "Reference condition temperature (F)")
	f.Float64Var(&reloadReloadedTemp, "reloaded-temp", 0, "Reloaded condition temperature (F)")
	f.StringVar(&reloadCableFile, "cable-file", "", "Load the cable definition from a JSON file instead of the material flags")

	sagtensionReloadCmd.MarkFlagRequired("reference-tension")
}

func sagtensionReloadCable() cable.Cable {
	return cable.Cable{
		Name:         "cli cable",
		AreaPhysical: reloadArea,
		Diameter:     1.108 / 12,
		WeightUnit:   reloadWeight,
		ComponentCore: cable.Component{
			CoefficientExpansionLinearThermal: reloadCoreExpansion,
			CoefficientsPolynomialCreep:       reloadCoreCreep,
			CoefficientsPolynomialLoadStrain:  reloadCoreLoadStrain,
			LoadLimitPolynomialCreep:          reloadCoreLoadStrain[len(reloadCoreLoadStrain)-1],
			LoadLimitPolynomialLoadStrain:     reloadCoreLoadStrain[len(reloadCoreLoadStrain)-1],
			ModulusCompressionElasticArea:     reloadModulusCoreComp,
			ModulusTensionElasticArea:         reloadModulusCoreTens,
		},
		ComponentShell: cable.Component{
			CoefficientExpansionLinearThermal: reloadShellExpansion,
			CoefficientsPolynomialCreep:       reloadShellCreep,
			CoefficientsPolynomialLoadStrain:  reloadShellLoadStrain,
			LoadLimitPolynomialCreep:          reloadShellLoadStrain[len(reloadShellLoadStrain)-1],
			LoadLimitPolynomialLoadStrain:     reloadShellLoadStrain[len(reloadShellLoadStrain)-1],
			ModulusCompressionElasticArea:     reloadModulusShellComp,
			ModulusTensionElasticArea:         reloadModulusShellTens,
		},
	}
}

func runSagtensionReload(cmd *cobra.Command, args []string) {
	c := sagtensionReloadCable()
	if reloadCableFile != "" {
		loaded, err := cable.LoadFromFile(reloadCableFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		c = *loaded
	}

	referenceCatenary := catenary.Catenary3D{
		SpacingEndpoints: vector.New3D(reloadSpan, 0, 0),
		WeightUnit:       vector.New3D(0, 0, c.WeightUnit),
	}
	referenceCatenary.SetTensionHorizontal(reloadReferenceTension)

	referenceModel, ok := elongation.NewModel(c, cable.State{Temperature: reloadReferenceTemp, PolynomialType: cable.LoadStrain})
	if !ok {
		fmt.Println("Error: invalid reference cable/state")
		return
	}
	reloadedModel, ok := elongation.NewModel(c, cable.State{Temperature: reloadReloadedTemp, PolynomialType: cable.LoadStrain})
	if !ok {
		fmt.Println("Error: invalid reloaded cable/state")
		return
	}

	reloader := sagtension.Reloader{
		ReferenceCatenary:  referenceCatenary,
		ReferenceModel:     referenceModel,
		ReloadedModel:      reloadedModel,
		ReloadedWeightUnit: vector.New3D(0, 0, c.WeightUnit),
	}
	h, ok := reloader.TensionHorizontal()
	if !ok {
		fmt.Println("Error: reload did not converge")
		return
	}
	reloadedCatenary, _ := reloader.CatenaryReloaded()
	length, _ := reloadedCatenary.Length()
	sag, _ := reloadedCatenary.Sag()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Reference tension:\t%.2f lb at %.1f F\n", reloadReferenceTension, reloadReferenceTemp)
	fmt.Fprintf(w, "  Reloaded temperature:\t%.1f F\n", reloadReloadedTemp)
	fmt.Fprintf(w, "  Reloaded horizontal tension:\t%.2f lb\n", h)
	fmt.Fprintf(w, "  Reloaded sag:\t%.3f ft\n", sag)
	fmt.Fprintf(w, "  Reloaded length:\t%.3f ft\n", length)
	w.Flush()
}
