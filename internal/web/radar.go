package web

import (
	"math"
	"strconv"
	"strings"

	"github.com/desertthunder/statsweb/internal/models"
)

// Radar chart styling.
const (
	RadarFill       = "rgb(30, 215, 96, 0.2)"
	RadarBorder     = "rgb(30, 215, 96)"
	RadarGrid       = "rgb(23, 26, 32)"
	RadarLabel      = "rgb(163, 163, 163)"
	RadarLabelSize  = 12
	RadarLineWidth  = 3
	RadarStepSize   = 0.25
	radarSize       = 320.0
	radarRadius     = 110.0
	radarLabelInset = 22.0
	radarPointSize  = 3.0
)

// RadarLabels names the chart axes in drawing order, clockwise from the top.
var RadarLabels = []string{
	"Acoustic",
	"Danceable",
	"Energetic",
	"Instrumental",
	"Lively",
	"Speechful",
	"Valence",
}

// RadarChart is the geometry of an audio-feature radar chart drawn as SVG.
type RadarChart struct {
	Size    float64
	Center  float64
	Rings   []float64 // grid circle radii, one per step
	Axes    []RadarAxis
	Points  []RadarPoint
	Polygon string // SVG points attribute; empty when there is no data
	Empty   bool

	Fill        string
	Border      string
	Grid        string
	Label       string
	LabelSize   int
	LineWidth   int
	PointRadius float64
}

// RadarAxis is an angle line with its label position.
type RadarAxis struct {
	Label  string
	Value  float64
	X, Y   float64 // outer end of the angle line
	LX, LY float64 // label anchor
	Anchor string  // SVG text-anchor
}

// RadarPoint is a plotted value.
type RadarPoint struct {
	X, Y float64
}

// RadarValues returns the seven plotted features of f in [RadarLabels] order.
func RadarValues(f *models.AudioFeatures) []float64 {
	if f == nil {
		return nil
	}
	return []float64{
		f.Acousticness,
		f.Danceability,
		f.Energy,
		f.Instrumentalness,
		f.Liveness,
		f.Speechiness,
		f.Valence,
	}
}

// NewRadarChart lays out a chart for f. A nil f gives the grid and labels only.
//
// Values are clamped to [0,1]; the scale begins at zero with rings every [RadarStepSize].
func NewRadarChart(f *models.AudioFeatures) RadarChart {
	c := radarSize / 2
	chart := RadarChart{
		Size:        radarSize,
		Center:      c,
		Fill:        RadarFill,
		Border:      RadarBorder,
		Grid:        RadarGrid,
		Label:       RadarLabel,
		LabelSize:   RadarLabelSize,
		LineWidth:   RadarLineWidth,
		PointRadius: radarPointSize,
	}

	for step := RadarStepSize; step <= 1+1e-9; step += RadarStepSize {
		chart.Rings = append(chart.Rings, round2(radarRadius*step))
	}

	values := RadarValues(f)
	chart.Empty = values == nil

	points := make([]string, 0, len(RadarLabels))
	for i, label := range RadarLabels {
		angle := axisAngle(i)
		cos, sin := math.Cos(angle), math.Sin(angle)

		axis := RadarAxis{
			Label:  label,
			X:      round2(c + radarRadius*cos),
			Y:      round2(c + radarRadius*sin),
			LX:     round2(c + (radarRadius+radarLabelInset)*cos),
			LY:     round2(c + (radarRadius+radarLabelInset)*sin),
			Anchor: anchor(cos),
		}

		if values != nil {
			v := clamp01(values[i])
			axis.Value = v
			p := RadarPoint{X: round2(c + radarRadius*v*cos), Y: round2(c + radarRadius*v*sin)}
			chart.Points = append(chart.Points, p)
			points = append(points, formatFloat(p.X)+","+formatFloat(p.Y))
		}

		chart.Axes = append(chart.Axes, axis)
	}

	chart.Polygon = strings.Join(points, " ")
	return chart
}

// axisAngle is the angle of axis i in radians, starting at twelve o'clock.
func axisAngle(i int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(RadarLabels))
}

func anchor(cos float64) string {
	switch {
	case cos > 0.1:
		return "start"
	case cos < -0.1:
		return "end"
	default:
		return "middle"
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
