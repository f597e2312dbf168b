package report

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/thermal"
)

func ensureDir(filename string) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}
}

// ExportCatenaryProfile plots a catenary's sag curve, chord, and low
// point to filename, inferring the image format from its extension.
func ExportCatenaryProfile(c catenary.Catenary3D, numPoints int, filename string) error {
	p := plot.New()
	p.Title.Text = "Catenary Profile"
	p.X.Label.Text = "Span (ft)"
	p.Y.Label.Text = "Elevation (ft)"

	if numPoints < 2 {
		numPoints = 2
	}

	curve := make(plotter.XYs, numPoints)
	chord := make(plotter.XYs, 2)
	for i := 0; i < numPoints; i++ {
		position := float64(i) / float64(numPoints-1)
		coord, ok := c.Coordinate(position, false)
		if !ok {
			return errNoCoordinate
		}
		curve[i] = plotter.XY{X: coord.X, Y: coord.Z}
	}
	back, _ := c.Coordinate(0, false)
	ahead, _ := c.Coordinate(1, false)
	chord[0] = plotter.XY{X: back.X, Y: back.Z}
	chord[1] = plotter.XY{X: ahead.X, Y: ahead.Z}

	curveLine, err := plotter.NewLine(curve)
	if err != nil {
		return err
	}
	curveLine.LineStyle.Width = vg.Points(2)
	curveLine.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(curveLine)

	chordLine, err := plotter.NewLine(chord)
	if err != nil {
		return err
	}
	chordLine.LineStyle.Width = vg.Points(1)
	chordLine.LineStyle.Color = color.Gray{Y: 128}
	chordLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(chordLine)

	if positionSag, ok := c.PositionFractionSagPoint(); ok {
		low, ok := c.Coordinate(positionSag, false)
		if ok {
			lowPoint, err := plotter.NewScatter(plotter.XYs{{X: low.X, Y: low.Z}})
			if err == nil {
				lowPoint.GlyphStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
				lowPoint.GlyphStyle.Radius = vg.Points(4)
				p.Add(lowPoint)
			}
		}
	}

	ensureDir(filename)
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}

// ExportTransientTemperatureCurve plots a transient temperature history
// to filename.
func ExportTransientTemperatureCurve(points []thermal.TemperaturePoint, filename string) error {
	p := plot.New()
	p.Title.Text = "Transient Conductor Temperature"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Temperature"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(pt.Time), Y: pt.Temperature}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	p.Add(line)

	ensureDir(filename)
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}

type reportError string

func (e reportError) Error() string { return string(e) }

const errNoCoordinate = reportError("catenary coordinate did not converge")
