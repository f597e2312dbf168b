package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/sagging"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/spf13/cobra"
)

var (
	transitSpan     float64
	transitVertical float64
	transitTension  float64
	transitWeight   float64
	transitPoint    string
)

var saggingTransitCmd = &cobra.Command{
	Use:   "transit",
	Short: "Aim a surveyor's transit at a catenary's sag point",
	Long: `Given a transit set up below and to the side of a span, find the
lowest vertical sighting angle to the catenary, the point that angle
sights, and the control factor relating that point's sag to the span's
maximum sag.

The transit point is given as "x,y,z" in feet, measured from the span's
left support.

Example:
  sagtension sagging transit --span 2000 --vertical 100 --tension 5000 \
    --weight 1 --point 0,0,-50`,
	Run: runSaggingTransit,
}

func init() {
	saggingCmd.AddCommand(saggingTransitCmd)

	f := saggingTransitCmd.Flags()
	f.Float64Var(&transitSpan, "span", 2000, "Horizontal endpoint spacing (ft)")
	f.Float64Var(&transitVertical, "vertical", 0, "Vertical endpoint spacing (ft)")
	f.Float64VarP(&transitTension, "tension", "t", 5000, "Horizontal tension (lb)")
	f.Float64VarP(&transitWeight, "weight", "w", 1, "Cable unit weight (lb/ft)")
	f.StringVar(&transitPoint, "point", "", "Transit point \"x,y,z\" (ft) [required]")

	saggingTransitCmd.MarkFlagRequired("point")
}

func runSaggingTransit(cmd *cobra.Command, args []string) {
	point, ok := parsePoint3D(transitPoint)
	if !ok {
		fmt.Printf("Error: invalid transit point %q, expected \"x,y,z\"\n", transitPoint)
		return
	}

	c := catenary.Catenary3D{
		SpacingEndpoints: vector.New3D(transitSpan, 0, transitVertical),
		WeightUnit:       vector.New3D(0, 0, transitWeight),
	}
	c.SetTensionHorizontal(transitTension)

	sagger := sagging.TransitSagger{Catenary: c, PointTransit: point}
	if !sagger.Validate(true, nil) {
		fmt.Println("Error: invalid transit sagger inputs")
		return
	}

	angle, ok := sagger.AngleLow()
	if !ok {
		fmt.Println("Error: transit sighting did not converge")
		return
	}
	low, _ := sagger.PointCatenaryLow()
	factor, _ := sagger.FactorControl()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Low sighting angle:\t%.3f deg\n", angle)
	fmt.Fprintf(w, "  Low point:\t(%.2f, %.2f, %.2f) ft\n", low.X, low.Y, low.Z)
	fmt.Fprintf(w, "  Control factor:\t%.4f\n", factor)
	if target, ok := sagger.PointTarget(); ok {
		fmt.Fprintf(w, "  Target point:\t(%.2f, %.2f, %.2f) ft\n", target.X, target.Y, target.Z)
	}
	w.Flush()
}
