// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabs

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/danielhkuo/shopdesk/listquery"
)

var ErrInvalidStatuses = errors.New("invalid status configuration")

// StatusDescriptor configures one status tab. Slice order is tab order.
type StatusDescriptor struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	ColorTag string `json:"color_tag"`
}

// StatusCounts holds per-status row counts plus the overall total
type StatusCounts struct {
	All   int            `json:"all"`
	ByKey map[string]int `json:"by_key"`
}

// Count returns the count for key, or 0 when it is missing
func (c StatusCounts) Count(key string) int {
	if key == listquery.AllKey {
		return max(c.All, 0)
	}
	return max(c.ByKey[key], 0)
}

// Tab is one rendered entry of the tab strip
type Tab struct {
	Index    int    `json:"index"`
	Key      string `json:"key"`
	Label    string `json:"label"`
	ColorTag string `json:"color_tag,omitempty"`
	Count    int    `json:"count"`
	Active   bool   `json:"active"`
	Href     string `json:"href"`
}

// Controller derives tab state from a URL. It keeps no state of its own;
// the URL is re-read on every call.
type Controller struct {
	path     string
	raw      string
	query    url.Values
	statuses []StatusDescriptor
}

func New(u *url.URL, statuses []StatusDescriptor) *Controller {
	return &Controller{
		path:     u.Path,
		raw:      u.RawQuery,
		query:    u.Query(),
		statuses: statuses,
	}
}

// CurrentSelection decodes the status filter from the URL
func (c *Controller) CurrentSelection() listquery.Selection {
	return listquery.DecodeStatusRaw(c.raw)
}

// SelectTab returns the navigation target for choosing key. Unrelated
// query parameters are preserved and pagination is reset.
func (c *Controller) SelectTab(key string) string {
	q := listquery.Clone(c.query)
	listquery.EncodeStatus(q, listquery.Select(key))
	return listquery.Encode(c.path, q)
}

// ActiveIndex is 0 for "all" (or an unknown key) and i+1 for the i-th status
func (c *Controller) ActiveIndex() int {
	return ActiveIndex(c.statuses, c.CurrentSelection())
}

// ActiveIndex locates sel within statuses
func ActiveIndex(statuses []StatusDescriptor, sel listquery.Selection) int {
	if sel.IsAll() {
		return 0
	}
	for i, s := range statuses {
		if s.Key == sel.Value {
			return i + 1
		}
	}
	return 0
}

// Tabs builds the tab strip: "all" first, then statuses in configured order.
func (c *Controller) Tabs(counts StatusCounts) []Tab {
	active := c.ActiveIndex()

	tabs := make([]Tab, 0, len(c.statuses)+1)
	tabs = append(tabs, Tab{
		Index:  0,
		Key:    listquery.AllKey,
		Label:  "All",
		Count:  counts.Count(listquery.AllKey),
		Active: active == 0,
		Href:   c.SelectTab(listquery.AllKey),
	})
	for i, s := range c.statuses {
		tabs = append(tabs, Tab{
			Index:    i + 1,
			Key:      s.Key,
			Label:    s.Label,
			ColorTag: s.ColorTag,
			Count:    counts.Count(s.Key),
			Active:   active == i+1,
			Href:     c.SelectTab(s.Key),
		})
	}
	return tabs
}

// ValidateStatuses rejects empty, duplicate or reserved keys
func ValidateStatuses(statuses []StatusDescriptor) error {
	seen := make(map[string]bool, len(statuses))
	for i, s := range statuses {
		switch {
		case s.Key == "":
			return fmt.Errorf("%w: status %d has empty key", ErrInvalidStatuses, i)
		case s.Key == listquery.AllKey:
			return fmt.Errorf("%w: key %q is reserved", ErrInvalidStatuses, s.Key)
		case seen[s.Key]:
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidStatuses, s.Key)
		}
		seen[s.Key] = true
	}
	return nil
}
