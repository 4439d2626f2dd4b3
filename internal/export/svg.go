package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/phaseviz/internal/analysis"
	"github.com/san-kum/phaseviz/internal/storage"
)

// SVGStyle colours a population plot.
type SVGStyle struct {
	Background string
	Primary    string
	Tracer     string
	Radius     float64
}

func DefaultSVGStyle() SVGStyle {
	return SVGStyle{Background: "#0a0a0a", Primary: "#00d4aa", Tracer: "#64ffdc", Radius: 1.5}
}

// PopulationToSVG plots a population snapshot on the unit torus, p increasing upward.
func PopulationToSVG(records []*storage.EntityRecord, width, height int, style SVGStyle) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, style.Background))

	writeGroup := func(kind, fill string, r float64) {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\" fill-opacity=\"0.8\">\n", fill))
		for _, rec := range records {
			if rec.Kind != kind {
				continue
			}
			cx := rec.Q * float64(width)
			cy := (1 - rec.P) * float64(height)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, r))
		}
		sb.WriteString("</g>\n")
	}
	writeGroup(storage.KindPrimary, style.Primary, style.Radius)
	writeGroup(storage.KindTracer, style.Tracer, style.Radius*1.6)

	sb.WriteString("</svg>")
	return sb.String()
}

// SweepToSVG draws the mean Lyapunov exponent against K as a polyline.
func SweepToSVG(points []analysis.SweepPoint, width, height int, strokeColor string) string {
	if len(points) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].K, points[0].K
	minY, maxY := points[0].MeanExponent, points[0].MeanExponent
	for _, p := range points {
		minX, maxX = min(minX, p.K), max(maxX, p.K)
		minY, maxY = min(minY, p.MeanExponent), max(maxY, p.MeanExponent)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.K - minX) / rangeX * float64(width)
		y := float64(height) - (p.MeanExponent-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
