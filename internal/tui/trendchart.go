package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

// TrendPoint is one labelled sample.
type TrendPoint struct {
	Label string
	Value float64
}

// paidClientsSample is the static sample series shown on the dashboard.
var paidClientsSample = []TrendPoint{
	{"Jan", 10}, {"Feb", 15}, {"Mar", 13}, {"Apr", 20},
	{"May", 25}, {"Jun", 22}, {"Jul", 30}, {"Aug", 28},
	{"Sep", 35}, {"Oct", 40}, {"Nov", 45}, {"Dec", 50},
}

// TrendChart plots a static monthly series as a filled line.
type TrendChart struct {
	title     string
	points    []TrendPoint
	lineStyle lipgloss.Style
	fillStyle lipgloss.Style
}

// NewTrendChart creates the "Paid Clients" chart.
func NewTrendChart() *TrendChart {
	return &TrendChart{
		title:     "Paid Clients",
		points:    append([]TrendPoint(nil), paidClientsSample...),
		lineStyle: lipgloss.NewStyle().Foreground(ColorYellow),
		fillStyle: lipgloss.NewStyle().Foreground(ColorYellow).Faint(true),
	}
}

// ContentLines returns the chart height for a content width.
func (c *TrendChart) ContentLines(contentWidth int) int {
	if contentWidth < 80 {
		return 6
	}
	return 8
}

func (c *TrendChart) header(width int) string {
	if len(c.points) == 0 {
		return c.title
	}
	minV, maxV := c.points[0].Value, c.points[0].Value
	for _, p := range c.points {
		minV = min(minV, p.Value)
		maxV = max(maxV, p.Value)
	}
	right := fmt.Sprintf("Min: %.0f | Max: %.0f", minV, maxV)
	spacer := width - 4 - len(c.title) - len(right)
	if spacer <= 0 {
		return c.title
	}
	return c.title + strings.Repeat(" ", spacer) + right
}

// Render draws the series as a filled line chart inside a bordered section.
func (c *TrendChart) Render(width, height int) string {
	style := sectionStyle.Width(width - 2).Height(max(height-2, 1))
	title := chartTitleStyle.Render(c.header(width))

	if len(c.points) == 0 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, helpStyle.Render("No data available")))
	}

	lc := c.plot(max(width-4, len(c.points)+6), max(height-3, 3))
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, lc.View()))
}

// plot fills the area under the line with shade runes, then draws the line.
func (c *TrendChart) plot(w, h int) linechart.Model {
	maxY := 0.0
	for _, p := range c.points {
		maxY = max(maxY, p.Value)
	}
	maxX := float64(len(c.points) - 1)

	lc := linechart.New(w, h, 0, max(maxX, 1), 0, max(maxY, 1),
		linechart.WithXYSteps(4, 2),
		linechart.WithXLabelFormatter(c.monthLabel),
		linechart.WithStyles(helpStyle, helpStyle, c.lineStyle),
	)
	lc.DrawXYAxisAndLabel()

	// One fill column per graph cell, interpolated between samples.
	cols := max(lc.GraphWidth(), 1)
	for i := 0; i < cols; i++ {
		x := maxX * float64(i) / float64(max(cols-1, 1))
		lc.DrawRuneLineWithStyle(
			canvas.Float64Point{X: x, Y: 0},
			canvas.Float64Point{X: x, Y: c.valueAt(x)},
			'░', c.fillStyle,
		)
	}
	for i := 1; i < len(c.points); i++ {
		lc.DrawBrailleLineWithStyle(
			canvas.Float64Point{X: float64(i - 1), Y: c.points[i-1].Value},
			canvas.Float64Point{X: float64(i), Y: c.points[i].Value},
			c.lineStyle,
		)
	}
	return lc
}

// valueAt linearly interpolates the series at fractional index x.
func (c *TrendChart) valueAt(x float64) float64 {
	i := int(math.Floor(x))
	if i >= len(c.points)-1 {
		return c.points[len(c.points)-1].Value
	}
	if i < 0 {
		return c.points[0].Value
	}
	frac := x - float64(i)
	return c.points[i].Value + frac*(c.points[i+1].Value-c.points[i].Value)
}

func (c *TrendChart) monthLabel(_ int, v float64) string {
	i := int(math.Round(v))
	if i < 0 || i >= len(c.points) {
		return ""
	}
	return c.points[i].Label
}
