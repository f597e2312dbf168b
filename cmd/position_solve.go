package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/hardware"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/spf13/cobra"
)

var (
	positionPoints            []string
	positionHardwareLengths   []float64
	positionTensionHorizontal float64
	positionWeight            float64
)

var positionSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve cable attachment points along a line of structures",
	Long: `Solve the equilibrium attachment point of every suspension structure
along a line, given each structure's point, each attachment's hardware
length, the strung horizontal tension, and the cable's unit weight.

A structure point is given as "x,y,z" in feet; pass --point once per
structure, in line order.

Example:
  sagtension position solve --point 0,0,0 --point 1000,0,0 --point 2000,0,0 \
    --hardware-length 0 --hardware-length 8 --hardware-length 0 \
    --tension 6000 --weight 1.094`,
	Run: runPositionSolve,
}

func init() {
	positionCmd.AddCommand(positionSolveCmd)

	f := positionSolveCmd.Flags()
	f.StringArrayVar(&positionPoints, "point", nil, "A structure point \"x,y,z\" (ft); repeat in line order [required]")
	f.Float64SliceVar(&positionHardwareLengths, "hardware-length", nil, "Suspension hardware length at each structure (ft); one per --point")
	f.Float64VarP(&positionTensionHorizontal, "tension", "t", 6000, "Horizontal tension (lb)")
	f.Float64VarP(&positionWeight, "weight", "w", 1.094, "Cable unit weight (lb/ft)")

	positionSolveCmd.MarkFlagRequired("point")
}

func parsePoint3D(s string) (vector.Point3D, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vector.Point3D{}, false
	}
	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return vector.Point3D{}, false
		}
		values[i] = v
	}
	return vector.Point3D{X: values[0], Y: values[1], Z: values[2]}, true
}

func runPositionSolve(cmd *cobra.Command, args []string) {
	points := make([]vector.Point3D, len(positionPoints))
	for i, s := range positionPoints {
		p, ok := parsePoint3D(s)
		if !ok {
			fmt.Printf("Error: invalid structure point %q, expected \"x,y,z\"\n", s)
			return
		}
		points[i] = p
	}

	hardwares := make([]hardware.Hardware, len(points))
	for i := range hardwares {
		if i < len(positionHardwareLengths) {
			hardwares[i] = hardware.Hardware{Length: positionHardwareLengths[i]}
		}
	}

	locator := hardware.PositionLocator{
		TensionHorizontal: positionTensionHorizontal,
		WeightUnit:        vector.New3D(0, 0, positionWeight),
		PointsStructure:   points,
		Hardwares:         hardwares,
	}

	if !locator.Validate(true, nil) {
		fmt.Println("Error: invalid position locator inputs")
		return
	}

	attachments, ok := locator.PointsCableAttachment()
	if !ok {
		fmt.Println("Error: attachment solve did not converge")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Structure\tAttachment X\tAttachment Y\tAttachment Z\n")
	for i, p := range attachments {
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\n", i, p.X, p.Y, p.Z)
	}
	w.Flush()
}
