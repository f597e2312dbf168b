package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/linecable"
	"github.com/catenarytools/sagtension/internal/unit"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/catenarytools/sagtension/internal/weather"
	"github.com/spf13/cobra"
)

var (
	saggerSpan       float64
	saggerConstraint string
	saggerDesigns    []string
)

var sagtensionSaggerCmd = &cobra.Command{
	Use:   "sagger",
	Short: "Find the controlling design constraint for a line cable",
	Long: `Given a line cable's not-yet-determined constraint and a list of design
constraints (ice/wind/temperature weather cases, each with its own
condition and limit), find which design constraint is most limiting at
the line cable's own constraint case, rewrite the constraint's limit to
match, then report each design constraint's actual tension once the
cable is sagged to the controlling one.

A design constraint is given as "type,ice,wind,temp,condition,limit":
  type      - h (horizontal tension), constant (catenary constant), or support
  ice       - radial ice thickness (in)
  wind      - transverse wind pressure (psf)
  temp      - cable temperature (F)
  condition - initial, creep, or load
  limit     - the constraint's limiting value, in type's units

The material coefficients default to the ACSR "Drake" conductor's core
and shell elongation curves.

Example:
  sagtension sagtension sagger --span 1200 \
    --design h,0,0,60,initial,6000 \
    --design support,0.5,8,0,initial,12000 \
    --design constant,0,0,212,load,5000`,
	Run: runSagtensionSagger,
}

func init() {
	sagtensionCmd.AddCommand(sagtensionSaggerCmd)

	f := sagtensionSaggerCmd.Flags()
	f.Float64Var(&saggerSpan, "span", 1200, "Ruling span (ft)")
	f.StringVar(&saggerConstraint, "constraint", "h,0,0,60,initial,6000", "The line cable's own constraint case, same format as --design")
	f.StringArrayVar(&saggerDesigns, "design", nil, "A design constraint \"type,ice,wind,temp,condition,limit\"; repeat [required]")

	sagtensionSaggerCmd.MarkFlagRequired("design")
}

func parseConstraint(s string) (linecable.Constraint, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return linecable.Constraint{}, false
	}

	var limitType linecable.LimitType
	switch strings.TrimSpace(parts[0]) {
	case "h":
		limitType = linecable.HorizontalTensionLimit
	case "constant":
		limitType = linecable.CatenaryConstantLimit
	case "support":
		limitType = linecable.SupportTensionLimit
	default:
		return linecable.Constraint{}, false
	}

	values := make([]float64, 3)
	for i, part := range parts[1:4] {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return linecable.Constraint{}, false
		}
		values[i] = v
	}

	var condition linecable.Condition
	switch strings.TrimSpace(parts[4]) {
	case "initial":
		condition = linecable.Initial
	case "creep":
		condition = linecable.CreepCondition
	case "load":
		condition = linecable.LoadCondition
	default:
		return linecable.Constraint{}, false
	}

	limit, err := strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
	if err != nil {
		return linecable.Constraint{}, false
	}

	return linecable.Constraint{
		WeatherCase: weather.LoadCase{
			ThicknessIce:     unit.ConvertLength(values[0], unit.InchesToFeet, 1, true),
			DensityIce:       57.3,
			PressureWind:     values[1],
			TemperatureCable: values[2],
		},
		Condition: condition,
		Limit:     limit,
		LimitType: limitType,
	}, true
}

func runSagtensionSagger(cmd *cobra.Command, args []string) {
	constraint, ok := parseConstraint(saggerConstraint)
	if !ok {
		fmt.Printf("Error: invalid --constraint %q\n", saggerConstraint)
		return
	}

	designs := make([]linecable.DesignConstraint, len(saggerDesigns))
	for i, s := range saggerDesigns {
		c, ok := parseConstraint(s)
		if !ok {
			fmt.Printf("Error: invalid --design %q\n", s)
			return
		}
		designs[i] = linecable.DesignConstraint{Constraint: c}
	}

	cable := sagtensionReloadCable()
	cable.StrengthRated = 31500

	lc := linecable.LineCable{
		Cable:                   cable,
		Constraint:              constraint,
		CreepStretchWeatherCase: constraint.WeatherCase,
		LoadStretchWeatherCase:  weather.LoadCase{ThicknessIce: 0.5 / 12, DensityIce: 57.3, PressureWind: 8, TemperatureCable: 0},
		SpacingEndpoints:        vector.New3D(saggerSpan, 0, 0),
	}

	sagger := linecable.Sagger{LineCable: lc, Designs: designs}
	result, ok := sagger.Solve()
	if !ok {
		fmt.Println("Error: sagger did not converge")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Controlling design:\t#%d\n", result.ControllingIndex)
	fmt.Fprintf(w, "  Sagged constraint limit:\t%.2f\n", result.ControllingLimit)
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Design\tH (lb)\tSupport (lb)\tConstant (ft)\t%% Capacity\n")
	for i, actual := range result.Actuals {
		fmt.Fprintf(w, "  %d\t%.2f\t%.2f\t%.2f\t%.1f\n", i, actual.TensionHorizontal, actual.TensionSupport, actual.CatenaryConstant, actual.PercentCapacity)
	}
	w.Flush()
}
