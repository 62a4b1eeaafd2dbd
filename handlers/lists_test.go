// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/listquery"
	"github.com/danielhkuo/shopdesk/metrics"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/store"
	"github.com/danielhkuo/shopdesk/tabs"
	"github.com/danielhkuo/shopdesk/testutil"
	"github.com/danielhkuo/shopdesk/views"
)

const (
	lowStockFilter    = "%21status_matches=%5B%22low_stock%22%5D"
	lowStockObjFilter = "%21status_matches=%5B%7B%22value%22%3A%22low_stock%22%7D%5D"
)

// newListMux serves ListHandler the way the router does so PathValue works
func newListMux(t *testing.T, lister Lister) *http.ServeMux {
	t.Helper()

	registry, err := listpage.NewRegistry(DefaultLists(testutil.GetTestConfig().PageSize)...)
	require.NoError(t, err)
	renderer, err := views.New()
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/{list}", NewListHandler(lister, registry, renderer).ServeList)
	return mux
}

// seedInventory creates 3 in stock, 2 low stock and 1 out of stock items
func seedInventory(t *testing.T, db *sql.DB) {
	t.Helper()
	testutil.CreateTestItem(t, db, "SKU-1", "Red Widget", 40, models.StockIn, 6*time.Minute)
	testutil.CreateTestItem(t, db, "SKU-2", "Blue Widget", 12, models.StockIn, 5*time.Minute)
	testutil.CreateTestItem(t, db, "SKU-3", "Gadget", 9, models.StockIn, 4*time.Minute)
	testutil.CreateTestItem(t, db, "SKU-4", "Green Widget", 2, models.StockLow, 3*time.Minute)
	testutil.CreateTestItem(t, db, "SKU-5", "Sprocket", 1, models.StockLow, 2*time.Minute)
	testutil.CreateTestItem(t, db, "SKU-6", "Gizmo", 0, models.StockOut, time.Minute)
}

func getListJSON(t *testing.T, mux *http.ServeMux, target string) models.ListPageResponse {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ListPageResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func tabCounts(tt []tabs.Tab) map[string]int {
	out := make(map[string]int, len(tt))
	for _, tab := range tt {
		out[tab.Key] = tab.Count
	}
	return out
}

func TestServeList_NeverPopulated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := newListMux(t, store.New(db))

	resp := getListJSON(t, mux, "/admin/inventory")

	assert.Equal(t, listpage.RenderNeverPopulated, resp.RenderState)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.ActiveIndex)
	require.Len(t, resp.Tabs, 5)
	for _, tab := range resp.Tabs {
		assert.Zero(t, tab.Count, tab.Key)
	}
}

func TestServeList_AllItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	resp := getListJSON(t, mux, "/admin/inventory")

	assert.Equal(t, listpage.RenderItems, resp.RenderState)
	assert.Equal(t, "all", resp.Status)
	assert.Equal(t, 0, resp.ActiveIndex)
	assert.Equal(t, 6, resp.Count)
	require.Len(t, resp.Items, 6)
	assert.Equal(t, "Gizmo", resp.Items[0].Title, "newest first")

	assert.Equal(t, map[string]int{
		"all":          6,
		"in_stock":     3,
		"low_stock":    2,
		"out_of_stock": 1,
		"backordered":  0,
	}, tabCounts(resp.Tabs))

	assert.Equal(t, "/admin/inventory", resp.Tabs[0].Href)
	assert.Equal(t, "/admin/inventory?"+lowStockFilter, resp.Tabs[2].Href)
}

func TestServeList_StatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	for name, query := range map[string]string{
		"string form": lowStockFilter,
		"object form": lowStockObjFilter,
	} {
		t.Run(name, func(t *testing.T) {
			resp := getListJSON(t, mux, "/admin/inventory?"+query)

			assert.Equal(t, listpage.RenderItems, resp.RenderState)
			assert.Equal(t, models.StockLow, resp.Status)
			assert.Equal(t, 2, resp.ActiveIndex)
			assert.True(t, resp.Tabs[2].Active)
			assert.False(t, resp.Tabs[0].Active)
			require.Len(t, resp.Items, 2)
			for _, item := range resp.Items {
				assert.Equal(t, models.StockLow, item.Status)
			}

			// Counts ignore the status filter
			assert.Equal(t, 6, tabCounts(resp.Tabs)["all"])
		})
	}
}

func TestServeList_MalformedFilterShowsAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	for _, query := range []string{
		"%21status_matches=not-json",
		"%21status_matches=%5B%5D",
		"%21status_matches=%5B42%5D",
		"%21status_matches=%5B%22all%22%5D",
	} {
		t.Run(query, func(t *testing.T) {
			resp := getListJSON(t, mux, "/admin/inventory?"+query)

			assert.Equal(t, "all", resp.Status)
			assert.Equal(t, 0, resp.ActiveIndex)
			assert.Len(t, resp.Items, 6)
		})
	}
}

func TestServeList_UnknownStatusKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	resp := getListJSON(t, mux, "/admin/inventory?%21status_matches=%5B%22discontinued%22%5D")

	assert.Equal(t, listpage.RenderNoResults, resp.RenderState)
	assert.Equal(t, 0, resp.ActiveIndex)
	assert.True(t, resp.Tabs[0].Active)
}

func TestServeList_SearchNoResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	resp := getListJSON(t, mux, "/admin/inventory?search=flux&"+lowStockFilter)

	assert.Equal(t, listpage.RenderNoResults, resp.RenderState)
	assert.Equal(t, "flux", resp.Search)
	assert.Equal(t, "/admin/inventory", resp.ResetURL)
	assert.Equal(t, 0, tabCounts(resp.Tabs)["all"])
}

func TestServeList_SearchNarrowsCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	resp := getListJSON(t, mux, "/admin/inventory?search=WIDGET")

	assert.Equal(t, listpage.RenderItems, resp.RenderState)
	assert.Len(t, resp.Items, 3)
	counts := tabCounts(resp.Tabs)
	assert.Equal(t, 3, counts["all"])
	assert.Equal(t, 2, counts["in_stock"])
	assert.Equal(t, 1, counts["low_stock"])

	// Selecting a tab keeps the search and drops the page
	assert.Equal(t, "/admin/inventory?"+lowStockFilter+"&search=WIDGET", resp.Tabs[2].Href)
}

func TestServeList_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	for i := 0; i < 12; i++ {
		testutil.CreateTestItem(t, db, fmt.Sprintf("SKU-%02d", i), fmt.Sprintf("Item %02d", i), 10, models.StockIn, time.Duration(12-i)*time.Minute)
	}
	mux := newListMux(t, store.New(db))

	first := getListJSON(t, mux, "/admin/inventory")
	assert.Len(t, first.Items, 10)
	assert.True(t, first.Pagination.Show)
	assert.Equal(t, 2, first.Pagination.TotalPages)
	assert.Empty(t, first.Pagination.Prev)
	assert.Equal(t, "/admin/inventory?page=2", first.Pagination.Next)

	second := getListJSON(t, mux, "/admin/inventory?page=2")
	assert.Equal(t, 2, second.Page)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "Item 00", second.Items[1].Title)
	assert.Equal(t, "/admin/inventory", second.Pagination.Prev)
	assert.Empty(t, second.Pagination.Next)
}

// recordingLister keeps the last page query it was asked for
type recordingLister struct {
	Lister
	last store.ListQuery
}

func (r *recordingLister) List(ctx context.Context, table string, q store.ListQuery) (listpage.Result, error) {
	r.last = q
	return r.Lister.List(ctx, table, q)
}

func TestServeList_HugePageIsClamped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	lister := &recordingLister{Lister: store.New(db)}
	mux := newListMux(t, lister)

	for _, page := range []string{"9223372036854775807", "99999999999999999999"} {
		t.Run(page, func(t *testing.T) {
			resp := getListJSON(t, mux, "/admin/inventory?page="+page)

			assert.Equal(t, listquery.MaxPage, resp.Page)
			assert.Empty(t, resp.Items)
			assert.Equal(t, 6, resp.Count)
			assert.Equal(t, (listquery.MaxPage-1)*10, lister.last.Offset)
			assert.Positive(t, lister.last.Offset)
		})
	}
}

func TestServeList_FirstRawFilterWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	resp := getListJSON(t, mux, "/admin/inventory?%21status_matches=%ZZ&"+lowStockFilter)

	assert.Equal(t, "all", resp.Status)
	assert.Equal(t, 0, resp.ActiveIndex)
	assert.Len(t, resp.Items, 6)
}

func TestServeList_OtherLists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	testutil.CreateTestAPIKey(t, db, cfg, "ci", models.KeyActive)
	testutil.CreateTestAPIKey(t, db, cfg, "old laptop", models.KeyRevoked)
	testutil.CreateTestApp(t, db, "Storefront", models.AppActive)
	mux := newListMux(t, store.New(db))

	keys := getListJSON(t, mux, "/admin/api-keys?%21status_matches=%5B%22revoked%22%5D")
	require.Len(t, keys.Items, 1)
	assert.Equal(t, "old laptop", keys.Items[0].Title)
	assert.Equal(t, 2, keys.ActiveIndex)

	apps := getListJSON(t, mux, "/admin/apps?%21status_matches=%5B%22inactive%22%5D")
	assert.Equal(t, listpage.RenderNoResults, apps.RenderState)
	assert.Equal(t, 1, tabCounts(apps.Tabs)["active"])
}

func TestServeList_HTML(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedInventory(t, db)
	mux := newListMux(t, store.New(db))

	req := httptest.NewRequest("GET", "/admin/inventory?"+lowStockFilter, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `data-state="items"`)
	assert.Contains(t, body, `data-tab-index="2" aria-current="page"`)
	assert.Contains(t, body, "Green Widget")
	assert.NotContains(t, body, "Red Widget")
	assert.Contains(t, body, `name="!status_matches"`)
}

func TestServeList_UnknownList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := newListMux(t, store.New(db))

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/widgets", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Contains(t, resp.Message, "widgets")
	})

	t.Run("html", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/widgets", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
		assert.Contains(t, w.Body.String(), "List not found")
		assert.NotContains(t, w.Body.String(), "data-tab-strip")
	})
}

func TestServeList_UnknownListsShareOneSeries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := newListMux(t, store.New(db))

	before, err := promtest.GatherAndCount(metrics.Registry, "shopdesk_list_renders_total")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", fmt.Sprintf("/admin/x%d", i), nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	}

	after, err := promtest.GatherAndCount(metrics.Registry, "shopdesk_list_renders_total")
	require.NoError(t, err)
	assert.LessOrEqual(t, after, before+1)
}

// failingLister returns counts but fails the page fetch
type failingLister struct {
	counts   tabs.StatusCounts
	countErr error
	listErr  error
}

func (f failingLister) List(context.Context, string, store.ListQuery) (listpage.Result, error) {
	return listpage.Result{}, f.listErr
}

func (f failingLister) CountByStatus(context.Context, string, string) (tabs.StatusCounts, error) {
	return f.counts, f.countErr
}

func TestServeList_FetchError(t *testing.T) {
	lister := failingLister{
		counts:  tabs.StatusCounts{All: 4, ByKey: map[string]int{models.StockIn: 4}},
		listErr: errors.New("connection reset"),
	}
	mux := newListMux(t, lister)

	resp := getListJSON(t, mux, "/admin/inventory")
	assert.Equal(t, listpage.RenderError, resp.RenderState)
	assert.NotEmpty(t, resp.Error)
	assert.NotContains(t, resp.Error, "connection reset")
	assert.Equal(t, 4, tabCounts(resp.Tabs)["all"])

	req := httptest.NewRequest("GET", "/admin/inventory", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `role="alert"`)
	assert.Contains(t, w.Body.String(), "data-tab-strip")
}

func TestServeList_CountErrorIsErrorState(t *testing.T) {
	mux := newListMux(t, failingLister{countErr: errors.New("timeout")})

	resp := getListJSON(t, mux, "/admin/inventory")

	assert.Equal(t, listpage.RenderError, resp.RenderState)
	assert.Equal(t, 0, tabCounts(resp.Tabs)["all"])
}
