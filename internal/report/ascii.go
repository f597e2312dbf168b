// Package report renders catenary profiles and thermal transient curves
// for terminal display and file export, in the box-drawing and
// gonum/plot styles this module has always used for its summaries.
package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/thermal"
)

// CatenaryProfile samples a 3D catenary at numPoints evenly spaced
// position fractions, from the back support to the ahead support.
func CatenaryProfile(c catenary.Catenary3D, numPoints int) ([]float64, bool) {
	if numPoints < 2 {
		numPoints = 2
	}
	elevations := make([]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		position := float64(i) / float64(numPoints-1)
		coord, ok := c.Coordinate(position, false)
		if !ok {
			return nil, false
		}
		elevations[i] = coord.Z
	}
	return elevations, true
}

// DrawCatenaryProfile renders a catenary's sampled elevation profile as
// a terminal sparkline.
func DrawCatenaryProfile(elevations []float64, caption string) string {
	graph := asciigraph.Plot(elevations, asciigraph.Height(10), asciigraph.Caption(caption))
	return "\n" + graph + "\n"
}

// SparklineTransient renders a transient temperature history as a
// terminal ASCII sparkline.
func SparklineTransient(points []thermal.TemperaturePoint, caption string) string {
	temperatures := make([]float64, len(points))
	for i, p := range points {
		temperatures[i] = p.Temperature
	}
	graph := asciigraph.Plot(temperatures, asciigraph.Height(10), asciigraph.Caption(caption))
	return "\n" + graph + "\n"
}

// DrawSummaryBox renders a titled box of report lines, the terminal
// summary format used across every command's report output. Solver
// summaries report "quantity: value unit" rows, so lines carrying a
// ": " separator get their values aligned into a second column.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	labelLen := 0
	for _, line := range lines {
		if label, _, found := strings.Cut(line, ": "); found && len(label) > labelLen {
			labelLen = len(label)
		}
	}

	rows := make([]string, len(lines))
	for i, line := range lines {
		if label, value, found := strings.Cut(line, ": "); found {
			rows[i] = fmt.Sprintf("%-*s  %s", labelLen+1, label+":", value)
		} else {
			rows[i] = line
		}
	}

	maxLen := len(title)
	for _, row := range rows {
		if len(row) > maxLen {
			maxLen = len(row)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, row))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// DrawCatenaryBox renders the catenary's own box-drawing side profile:
// a coarse ASCII rendering of the sag curve between its two supports,
// the same fixed-grid outline-and-fill technique this module has always
// used for cross-section summaries, here swept across span instead of
// depth.
func DrawCatenaryBox(c catenary.Catenary3D, widthChars, heightChars int) (string, bool) {
	elevations, ok := CatenaryProfile(c, widthChars)
	if !ok {
		return "", false
	}

	maxZ, minZ := elevations[0], elevations[0]
	for _, z := range elevations {
		if z > maxZ {
			maxZ = z
		}
		if z < minZ {
			minZ = z
		}
	}
	spread := maxZ - minZ
	if spread == 0 {
		spread = 1
	}

	rows := make([][]byte, heightChars+1)
	for r := range rows {
		rows[r] = bytes(widthChars, ' ')
	}
	for col, z := range elevations {
		row := heightChars - int((z-minZ)/spread*float64(heightChars))
		if row < 0 {
			row = 0
		}
		if row > heightChars {
			row = heightChars
		}
		rows[row][col] = '*'
	}

	var sb strings.Builder
	sb.WriteString("\n  CATENARY PROFILE\n  ────────────────\n\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  │%s│\n", string(row)))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))

	return sb.String(), true
}

func bytes(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}
