package session

import (
	"fmt"
	"strings"
)

// TrajectorySVG renders a recorded trajectory as an SVG path. Screen
// coordinates grow downward, so no vertical flip: the plot matches what the
// playground showed.
func TrajectorySVG(frames []Frame, width, height int, strokeColor string) string {
	if len(frames) < 2 {
		return ""
	}
	if strokeColor == "" {
		strokeColor = "#00ff88"
	}

	minX, maxX := frames[0].X, frames[0].X
	minY, maxY := frames[0].Y, frames[0].Y
	for _, f := range frames {
		if f.X < minX {
			minX = f.X
		}
		if f.X > maxX {
			maxX = f.X
		}
		if f.Y < minY {
			minY = f.Y
		}
		if f.Y > maxY {
			maxY = f.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, f := range frames {
		x := (f.X - minX) / rangeX * float64(width)
		y := (f.Y - minY) / rangeY * float64(height)
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
