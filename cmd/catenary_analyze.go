package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/report"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/spf13/cobra"
)

var (
	catenaryAnalyzeSpanX       float64
	catenaryAnalyzeSpanY       float64
	catenaryAnalyzeSpanZ       float64
	catenaryAnalyzeWeight      float64
	catenaryAnalyzeTension     float64
	catenaryAnalyzeNumPoints   int
	catenaryAnalyzeProfileOnly bool
)

var catenaryAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute length, sag, and support tensions for a span",
	Long: `Solve a 3D catenary's shape from its endpoint spacing, unit weight, and
horizontal tension, then report length, sag, and support tensions.

Examples:
  # A level 1200ft span under a 1.094 lb/ft bare cable at 6000 lb horizontal tension
  sagtension catenary analyze --span-x 1200 --weight 1.094 --tension 6000

  # An inclined span with a 50ft rise
  sagtension catenary analyze --span-x 1200 --span-z 50 --weight 1.094 --tension 6000`,
	Run: runCatenaryAnalyze,
}

func init() {
	catenaryCmd.AddCommand(catenaryAnalyzeCmd)

	catenaryAnalyzeCmd.Flags().Float64Var(&catenaryAnalyzeSpanX, "span-x", 0, "Horizontal span between supports (ft) [required]")
	catenaryAnalyzeCmd.Flags().Float64Var(&catenaryAnalyzeSpanY, "span-y", 0, "Transverse span between supports (ft)")
	catenaryAnalyzeCmd.Flags().Float64Var(&catenaryAnalyzeSpanZ, "span-z", 0, "Elevation difference between supports (ft)")
	catenaryAnalyzeCmd.Flags().Float64VarP(&catenaryAnalyzeWeight, "weight", "w", 0, "Cable unit weight (lb/ft) [required]")
	catenaryAnalyzeCmd.Flags().Float64VarP(&catenaryAnalyzeTension, "tension", "t", 0, "Horizontal tension (lb) [required]")
	catenaryAnalyzeCmd.Flags().IntVar(&catenaryAnalyzeNumPoints, "average-points", 100, "Number of equal steps the average tension is sampled over (both supports included)")
	catenaryAnalyzeCmd.Flags().BoolVar(&catenaryAnalyzeProfileOnly, "profile", false, "Render an ASCII profile of the sagged shape")

	catenaryAnalyzeCmd.MarkFlagRequired("span-x")
	catenaryAnalyzeCmd.MarkFlagRequired("weight")
	catenaryAnalyzeCmd.MarkFlagRequired("tension")
}

func runCatenaryAnalyze(cmd *cobra.Command, args []string) {
	c := catenary.Catenary3D{
		SpacingEndpoints: vector.New3D(catenaryAnalyzeSpanX, catenaryAnalyzeSpanY, catenaryAnalyzeSpanZ),
		WeightUnit:       vector.New3D(0, 0, catenaryAnalyzeWeight),
	}
	c.SetTensionHorizontal(catenaryAnalyzeTension)

	if !c.Validate(true, nil) {
		fmt.Println("Error: invalid catenary inputs")
		return
	}

	length, _ := c.Length()
	sag, _ := c.Sag()
	tensionMax, _ := c.TensionMax()
	tensionAverage, _ := c.TensionAverage(catenaryAnalyzeNumPoints)
	constant, _ := c.Constant()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Catenary constant:\t%.2f ft\n", constant)
	fmt.Fprintf(w, "  Length:\t%.3f ft\n", length)
	fmt.Fprintf(w, "  Sag:\t%.3f ft\n", sag)
	fmt.Fprintf(w, "  Support tension (max):\t%.2f lb\n", tensionMax)
	fmt.Fprintf(w, "  Average tension:\t%.2f lb\n", tensionAverage)
	w.Flush()

	fmt.Print(report.DrawSummaryBox("CATENARY ANALYSIS", []string{
		fmt.Sprintf("Span: %.1f, %.1f, %.1f ft", catenaryAnalyzeSpanX, catenaryAnalyzeSpanY, catenaryAnalyzeSpanZ),
		fmt.Sprintf("Horizontal tension: %.1f lb", catenaryAnalyzeTension),
		fmt.Sprintf("Sag: %.2f ft, Length: %.2f ft", sag, length),
	}))

	if catenaryAnalyzeProfileOnly {
		if box, ok := report.DrawCatenaryBox(c, 60, 12); ok {
			fmt.Print(box)
		}
	}
}
