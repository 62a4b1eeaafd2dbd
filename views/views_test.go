// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/shopdesk/indicator"
	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/tabs"
)

func basePage(state listpage.RenderState) ListPage {
	return ListPage{
		Title: "Inventory",
		Path:  "/admin/inventory",
		Lists: []NavLink{{Title: "Inventory", Href: "/admin/inventory", Current: true}},
		Tabs: []tabs.Tab{
			{Index: 0, Key: "all", Label: "All", Count: 1200, Active: true, Href: "/admin/inventory"},
			{Index: 1, Key: "in_stock", Label: "In stock", Count: 7, Href: "/admin/inventory?%21status_matches=%5B%22in_stock%22%5D"},
		},
		Indicator:      indicator.Indicators{Active: indicator.Rect{Left: 0, Width: 81.5}},
		State:          state,
		EmptyTitle:     "No inventory yet",
		NoResultsTitle: "No items match these filters",
		ResetURL:       "/admin/inventory",
		Colors:         map[string]string{"in_stock": "green"},
		Labels:         map[string]string{"in_stock": "In stock"},
	}
}

func TestRenderList_States(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	tests := []struct {
		state    listpage.RenderState
		contains []string
		absent   []string
	}{
		{listpage.RenderNeverPopulated, []string{`data-state="never_populated"`, "No inventory yet"}, []string{"data-reset"}},
		{listpage.RenderNoResults, []string{`data-state="no_results"`, `href="/admin/inventory" data-reset`}, []string{"No inventory yet"}},
		{listpage.RenderError, []string{`role="alert"`, "database unavailable", "data-tab-index"}, []string{`data-state="items"`}},
		{listpage.RenderItems, []string{`data-state="items"`, "Blue Widget", `class="status green"`, "In stock"}, []string{"data-reset"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			page := basePage(tt.state)
			if tt.state == listpage.RenderError {
				page.Error = "database unavailable"
			}
			if tt.state == listpage.RenderItems {
				page.Rows = []models.Row{{ID: "1", Title: "Blue Widget", Status: "in_stock", CreatedAt: time.Now().Add(-time.Hour)}}
				page.Count = 1
			}

			w := httptest.NewRecorder()
			require.NoError(t, r.RenderList(w, http.StatusOK, page))

			body := w.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestRenderList_TabStrip(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, r.RenderList(w, http.StatusOK, basePage(listpage.RenderItems)))

	body := w.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "1,200")
	assert.Contains(t, body, "width: 81.5px")
	assert.Contains(t, body, `aria-current="page"`)
	assert.Contains(t, body, "%21status_matches=%5B%22in_stock%22%5D")
}

func TestRenderList_Pagination(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page := basePage(listpage.RenderItems)
	page.Pagination = listpage.Pagination{Page: 2, TotalPages: 3, Prev: "/admin/inventory", Next: "/admin/inventory?page=3", Show: true}

	w := httptest.NewRecorder()
	require.NoError(t, r.RenderList(w, http.StatusOK, page))
	assert.Contains(t, w.Body.String(), "Page 2 of 3")
	assert.Contains(t, w.Body.String(), `rel="next"`)

	page.Pagination = listpage.Pagination{Page: 1, TotalPages: 1}
	w = httptest.NewRecorder()
	require.NoError(t, r.RenderList(w, http.StatusOK, page))
	assert.NotContains(t, w.Body.String(), "Page 1 of 1")
}

func TestRenderList_StatusParamKeptInSearchForm(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page := basePage(listpage.RenderItems)
	page.StatusParam = `["in_stock"]`

	w := httptest.NewRecorder()
	require.NoError(t, r.RenderList(w, http.StatusOK, page))
	assert.Contains(t, w.Body.String(), `name="!status_matches" value="[&#34;in_stock&#34;]"`)
}

func TestRenderError(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, r.RenderError(w, http.StatusNotFound, ErrorPage{Title: "List not found", Message: `unknown list "orders"`}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `data-state="blocking"`)
	assert.NotContains(t, w.Body.String(), "data-tab-strip")
}
