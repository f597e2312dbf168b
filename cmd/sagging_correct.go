package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/sagging"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/spf13/cobra"
)

var (
	saggingPoints            []string
	saggingTensionHorizontal float64
	saggingWeight            float64
)

var saggingCorrectCmd = &cobra.Command{
	Use:   "correct",
	Short: "Solve clipping offsets and sag corrections for a ruling span",
	Long: `Given the level/inclined attachment points of a multi-span ruling
section, solve the clipping offset and sag correction a field crew needs
at every structure to move the cable from its free-running (pulleyed)
position to its final clipped-in position.

An attachment point is given as "x,y,z" in feet; pass --point once per
structure, in line order.

Example:
  sagtension sagging correct --point 0,0,0 --point 800,0,0 --point 1200,0,0 --point 2200,0,0 \
    --tension 6000 --weight 1.094`,
	Run: runSaggingCorrect,
}

func init() {
	saggingCmd.AddCommand(saggingCorrectCmd)

	f := saggingCorrectCmd.Flags()
	f.StringArrayVar(&saggingPoints, "point", nil, "An attachment point \"x,y,z\" (ft); repeat in line order [required]")
	f.Float64VarP(&saggingTensionHorizontal, "tension", "t", 6000, "Horizontal tension (lb)")
	f.Float64VarP(&saggingWeight, "weight", "w", 1.094, "Cable unit weight (lb/ft)")

	saggingCorrectCmd.MarkFlagRequired("point")
}

func runSaggingCorrect(cmd *cobra.Command, args []string) {
	points := make([]vector.Point3D, len(saggingPoints))
	for i, s := range saggingPoints {
		p, ok := parsePoint3D(s)
		if !ok {
			fmt.Printf("Error: invalid attachment point %q, expected \"x,y,z\"\n", s)
			return
		}
		points[i] = p
	}

	corrector := sagging.SagPositionCorrector{
		TensionHorizontal: saggingTensionHorizontal,
		WeightUnit:        vector.New3D(0, 0, saggingWeight),
		PointsAttachment:  points,
	}

	if !corrector.Validate(true, nil) {
		fmt.Println("Error: invalid sag position corrector inputs")
		return
	}

	offsets, ok := corrector.ClippingOffsets()
	if !ok {
		fmt.Println("Error: clipping offsets did not converge")
		return
	}
	corrections, ok := corrector.SagCorrections()
	if !ok {
		fmt.Println("Error: sag corrections did not converge")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Structure\tClipping Offset (ft)\n")
	for i, offset := range offsets {
		fmt.Fprintf(w, "  %d\t%.4f\n", i, offset)
	}
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span\tSag Correction (ft)\n")
	for i, correction := range corrections {
		fmt.Fprintf(w, "  %d\t%.4f\n", i, correction)
	}
	w.Flush()
}
