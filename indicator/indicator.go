// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package indicator

// NoHover marks the absence of a hovered tab
const NoHover = -1

// Measurement is the layout geometry of one tab
type Measurement struct {
	OffsetLeft  float64 `json:"offset_left"`
	OffsetWidth float64 `json:"offset_width"`
}

// Measurer reports the current geometry of a mounted tab
type Measurer interface {
	Measure() Measurement
}

// Rect is a horizontal span relative to the visible tab strip
type Rect struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Indicators are the two positioned overlays of the tab strip
type Indicators struct {
	Hover        Rect `json:"hover"`
	HoverVisible bool `json:"hover_visible"`
	Active       Rect `json:"active"`
}

// Positioner tracks hover/active tab indices and converts tab
// measurements into indicator rectangles. It is view-local and not safe
// for concurrent use.
type Positioner struct {
	nodes   []Measurer
	hovered int
	active  int
	scroll  float64
}

func NewPositioner(tabCount int) *Positioner {
	p := &Positioner{hovered: NoHover}
	p.Reset(tabCount)
	return p
}

// Reset is called whenever the tab set changes. Every handle is dropped,
// including those at indices that still exist; the new tabs Bind again.
// Hover state is cleared.
func (p *Positioner) Reset(tabCount int) {
	tabCount = max(tabCount, 0)
	clear(p.nodes[:cap(p.nodes)])
	if tabCount <= cap(p.nodes) {
		p.nodes = p.nodes[:tabCount]
	} else {
		p.nodes = make([]Measurer, tabCount)
	}
	p.hovered = NoHover
	if p.active >= tabCount {
		p.active = 0
	}
}

// Bind records the node handle for index i, replacing any previous one
func (p *Positioner) Bind(i int, m Measurer) {
	if i < 0 || i >= len(p.nodes) {
		return
	}
	p.nodes[i] = m
}

func (p *Positioner) Hover(i int) {
	p.hovered = i
}

func (p *Positioner) Leave() {
	p.hovered = NoHover
}

func (p *Positioner) SetActive(i int) {
	p.active = i
}

// Scroll records the horizontal scroll offset of the tab strip
func (p *Positioner) Scroll(x float64) {
	p.scroll = x
}

func (p *Positioner) Hovered() int { return p.hovered }
func (p *Positioner) Active() int  { return p.active }

// Compute derives both indicators from the current measurements. Calling
// it repeatedly without state changes yields the same result.
func (p *Positioner) Compute() Indicators {
	var out Indicators
	if p.hovered != NoHover {
		out.HoverVisible = true
		out.Hover = p.rect(p.hovered)
	}
	out.Active = p.rect(p.active)
	return out
}

// rect is zero for unmounted or out-of-range tabs
func (p *Positioner) rect(i int) Rect {
	if i < 0 || i >= len(p.nodes) || p.nodes[i] == nil {
		return Rect{}
	}
	m := p.nodes[i].Measure()
	return Rect{
		Left:  m.OffsetLeft - p.scroll,
		Width: m.OffsetWidth,
	}
}
