// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listpage

import (
	"math"
	"net/url"

	"github.com/danielhkuo/shopdesk/listquery"
	"github.com/danielhkuo/shopdesk/tabs"
)

// RenderState is the mutually exclusive shape of a rendered list page
type RenderState string

const (
	RenderError          RenderState = "error"
	RenderNeverPopulated RenderState = "never_populated"
	RenderNoResults      RenderState = "no_results"
	RenderItems          RenderState = "items"
)

// Result is what the data-fetch boundary returns for one page
type Result struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// State is the list state resolved from a URL. It is rebuilt on every
// request and never stored.
type State struct {
	Search   string
	Page     int
	PageSize int
	Status   listquery.Selection

	path  string
	query url.Values
	tabs  *tabs.Controller
}

// Resolve derives the list state for cfg from the request URL
func Resolve(u *url.URL, cfg Config) State {
	q := u.Query()
	return State{
		Search:   listquery.Search(q),
		Page:     listquery.Page(q),
		PageSize: cfg.PageSize,
		Status:   listquery.DecodeStatusRaw(u.RawQuery),
		path:     u.Path,
		query:    q,
		tabs:     tabs.New(u, cfg.Statuses),
	}
}

// MaxOffset is the largest row offset handed to the data fetch
const MaxOffset = math.MaxInt32

// Offset is the row offset of the current page. It saturates at MaxOffset.
func (s State) Offset() int {
	if s.Page <= 1 || s.PageSize <= 0 {
		return 0
	}
	if s.Page-1 > MaxOffset/s.PageSize {
		return MaxOffset
	}
	return (s.Page - 1) * s.PageSize
}

// Filtered reports whether a search term or status filter is active
func (s State) Filtered() bool {
	return s.Search != "" || !s.Status.IsAll()
}

// Tabs exposes the tab controller bound to the same URL
func (s State) Tabs() *tabs.Controller {
	return s.tabs
}

// PageURL targets page n, leaving search and filter untouched
func (s State) PageURL(n int) string {
	q := listquery.Clone(s.query)
	listquery.SetPage(q, n)
	return listquery.Encode(s.path, q)
}

// FilterURL targets the status tab key; the page resets to 1
func (s State) FilterURL(key string) string {
	return s.tabs.SelectTab(key)
}

// ResetURL clears every query parameter
func (s State) ResetURL() string {
	return s.path
}

// Classify picks the render state for a fetch outcome
func Classify(s State, res Result, fetchErr error) RenderState {
	switch {
	case fetchErr != nil:
		return RenderError
	case res.Count == 0 && !s.Filtered():
		return RenderNeverPopulated
	case res.Count == 0:
		return RenderNoResults
	default:
		return RenderItems
	}
}

// Pagination describes the pager under the item list
type Pagination struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Prev       string `json:"prev,omitempty"`
	Next       string `json:"next,omitempty"`
	Show       bool   `json:"show"`
}

// Paginate builds the pager for count total rows
func Paginate(s State, count int) Pagination {
	total := 1
	if s.PageSize > 0 && count > 0 {
		total = (count + s.PageSize - 1) / s.PageSize
	}
	p := Pagination{
		Page:       s.Page,
		TotalPages: total,
		Show:       count > s.PageSize,
	}
	if !p.Show {
		return p
	}
	if s.Page > 1 {
		p.Prev = s.PageURL(min(s.Page-1, total))
	}
	if s.Page < total {
		p.Next = s.PageURL(s.Page + 1)
	}
	return p
}
