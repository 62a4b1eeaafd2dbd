// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package indicator

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// Style approximates the tab strip's CSS so geometry can be estimated
// before the browser has laid anything out.
type Style struct {
	CellWidth float64 // px per terminal-style cell (wide runes take two)
	PaddingX  float64 // horizontal padding on each side of a tab
	Gap       float64 // space between adjacent tabs
	BadgeCell float64 // extra cells reserved for the count badge
}

var DefaultStyle = Style{
	CellWidth: 7.5,
	PaddingX:  12,
	Gap:       4,
	BadgeCell: 3,
}

// TextMeasurer is a fixed measurement computed from tab text
type TextMeasurer Measurement

func (m TextMeasurer) Measure() Measurement {
	return Measurement(m)
}

// TabLabel is the visible text of one tab
type TabLabel struct {
	Label string
	Count int
}

// Layout places tabs left to right and returns one measurer per tab
func Layout(labels []TabLabel, style Style) []Measurer {
	out := make([]Measurer, len(labels))
	left := 0.0
	for i, l := range labels {
		cells := runewidth.StringWidth(l.Label) + len(strconv.Itoa(l.Count))
		width := float64(cells)*style.CellWidth + style.BadgeCell*style.CellWidth + 2*style.PaddingX
		out[i] = TextMeasurer{OffsetLeft: left, OffsetWidth: width}
		left += width + style.Gap
	}
	return out
}

// Initial positions the active underline for the first paint of a strip
func Initial(labels []TabLabel, active int, style Style) Indicators {
	p := NewPositioner(len(labels))
	for i, m := range Layout(labels, style) {
		p.Bind(i, m)
	}
	p.SetActive(active)
	return p.Compute()
}
