// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/shopdesk/indicator"
	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/listquery"
	"github.com/danielhkuo/shopdesk/metrics"
	"github.com/danielhkuo/shopdesk/middleware"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/store"
	"github.com/danielhkuo/shopdesk/tabs"
	"github.com/danielhkuo/shopdesk/views"
)

// DefaultLists returns the list screens served under /admin/{list}
func DefaultLists(pageSize int) []listpage.Config {
	return []listpage.Config{
		{
			Name:     "inventory",
			Title:    "Inventory",
			Path:     "/admin/inventory",
			Table:    store.InventoryTable.Name,
			PageSize: pageSize,
			Statuses: []tabs.StatusDescriptor{
				{Key: models.StockIn, Label: "In stock", ColorTag: "green"},
				{Key: models.StockLow, Label: "Low stock", ColorTag: "yellow"},
				{Key: models.StockOut, Label: "Out of stock", ColorTag: "red"},
				{Key: models.StockBackordered, Label: "Backordered", ColorTag: "blue"},
			},
			EmptyTitle:     "No inventory yet",
			EmptyHint:      "Items appear here once they are added with POST /inventory.",
			NoResultsTitle: "No items match these filters",
		},
		{
			Name:     "api-keys",
			Title:    "API keys",
			Path:     "/admin/api-keys",
			Table:    store.APIKeyTable.Name,
			PageSize: pageSize,
			Statuses: []tabs.StatusDescriptor{
				{Key: models.KeyActive, Label: "Active", ColorTag: "green"},
				{Key: models.KeyRevoked, Label: "Revoked", ColorTag: "gray"},
			},
			EmptyTitle:     "No API keys yet",
			EmptyHint:      "Generate a key with POST /api-keys.",
			NoResultsTitle: "No API keys match these filters",
		},
		{
			Name:     "apps",
			Title:    "OAuth apps",
			Path:     "/admin/apps",
			Table:    store.AppTable.Name,
			PageSize: pageSize,
			Statuses: []tabs.StatusDescriptor{
				{Key: models.AppActive, Label: "Active", ColorTag: "green"},
				{Key: models.AppInactive, Label: "Inactive", ColorTag: "gray"},
			},
			EmptyTitle:     "No OAuth apps yet",
			EmptyHint:      "Register an app with POST /apps, then activate it.",
			NoResultsTitle: "No apps match these filters",
		},
	}
}

// Lister is the data-fetch and status-aggregate boundary of list pages
type Lister interface {
	List(ctx context.Context, table string, q store.ListQuery) (listpage.Result, error)
	CountByStatus(ctx context.Context, table, search string) (tabs.StatusCounts, error)
}

type ListHandler struct {
	lister   Lister
	registry *listpage.Registry
	views    *views.Renderer
}

func NewListHandler(lister Lister, registry *listpage.Registry, renderer *views.Renderer) *ListHandler {
	return &ListHandler{lister: lister, registry: registry, views: renderer}
}

// page is one resolved list page, shared by the HTML and JSON renderings
type page struct {
	cfg        listpage.Config
	state      listpage.State
	tabs       []tabs.Tab
	active     int
	render     listpage.RenderState
	rows       []models.Row
	count      int
	fetchErr   error
	pagination listpage.Pagination
}

// ServeList handles GET /admin/{list}
func (h *ListHandler) ServeList(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("list")
	cfg, err := h.registry.Lookup(name)
	if err != nil {
		metrics.RecordListRender(metrics.UnknownList, "not_found")
		h.blockingError(w, r, http.StatusNotFound, "List not found", err)
		return
	}

	p := h.resolve(r, cfg)
	metrics.RecordListRender(cfg.Name, string(p.render))

	if wantsJSON(r) {
		middleware.JSONResponse(w, http.StatusOK, p.response())
		return
	}

	if err := h.views.RenderList(w, http.StatusOK, p.view(h.nav(cfg.Name))); err != nil {
		slog.Error("failed to render list page", "list", cfg.Name, "error", err)
		h.blockingError(w, r, http.StatusInternalServerError, "Something went wrong", errors.New("the page could not be rendered"))
	}
}

func (h *ListHandler) resolve(r *http.Request, cfg listpage.Config) page {
	state := listpage.Resolve(r.URL, cfg)
	ctx := r.Context()

	// Unknown status keys are passed through; they match no rows and the
	// page lands in the "no results" state with the All tab highlighted.
	var status string
	if !state.Status.IsAll() {
		status = state.Status.Value
		if !cfg.HasStatus(status) {
			slog.Debug("unknown status filter", "list", cfg.Name, "status", status)
		}
	}

	counts, countErr := h.lister.CountByStatus(ctx, cfg.Table, state.Search)
	if countErr != nil {
		slog.Error("failed to count list statuses", "list", cfg.Name, "error", countErr)
	}

	res, fetchErr := h.lister.List(ctx, cfg.Table, store.ListQuery{
		Search: state.Search,
		Status: status,
		Limit:  state.PageSize,
		Offset: state.Offset(),
	})
	if fetchErr != nil {
		slog.Error("failed to fetch list", "list", cfg.Name, "error", fetchErr)
	} else if countErr != nil {
		fetchErr = countErr
	}

	p := page{
		cfg:      cfg,
		state:    state,
		tabs:     state.Tabs().Tabs(counts),
		active:   state.Tabs().ActiveIndex(),
		render:   listpage.Classify(state, res, fetchErr),
		fetchErr: fetchErr,
		rows:     []models.Row{},
	}
	if p.render == listpage.RenderItems {
		if rows, ok := res.Items.([]models.Row); ok {
			p.rows = rows
		}
		p.count = res.Count
		p.pagination = listpage.Paginate(state, res.Count)
	}
	return p
}

func (p page) response() models.ListPageResponse {
	resp := models.ListPageResponse{
		List:        p.cfg.Name,
		Title:       p.cfg.Title,
		Search:      p.state.Search,
		Status:      p.state.Status.Key(),
		Page:        p.state.Page,
		PageSize:    p.state.PageSize,
		Tabs:        p.tabs,
		ActiveIndex: p.active,
		RenderState: p.render,
		Items:       p.rows,
		Count:       p.count,
		ResetURL:    p.state.ResetURL(),
		Pagination:  p.pagination,
	}
	if p.fetchErr != nil {
		resp.Error = "Failed to load " + strings.ToLower(p.cfg.Title)
	}
	return resp
}

func (p page) view(nav []views.NavLink) views.ListPage {
	labels := make([]indicator.TabLabel, len(p.tabs))
	for i, t := range p.tabs {
		labels[i] = indicator.TabLabel{Label: t.Label, Count: t.Count}
	}

	colors := make(map[string]string, len(p.cfg.Statuses))
	names := make(map[string]string, len(p.cfg.Statuses))
	for _, s := range p.cfg.Statuses {
		colors[s.Key] = s.ColorTag
		names[s.Key] = s.Label
	}

	v := views.ListPage{
		Title:          p.cfg.Title,
		Path:           p.cfg.Path,
		Lists:          nav,
		Search:         p.state.Search,
		Tabs:           p.tabs,
		Indicator:      indicator.Initial(labels, p.active, indicator.DefaultStyle),
		State:          p.render,
		Rows:           p.rows,
		Count:          p.count,
		EmptyTitle:     p.cfg.EmptyTitle,
		EmptyHint:      p.cfg.EmptyHint,
		NoResultsTitle: p.cfg.NoResultsTitle,
		ResetURL:       p.state.ResetURL(),
		Pagination:     p.pagination,
		Colors:         colors,
		Labels:         names,
	}
	if !p.state.Status.IsAll() {
		q := url.Values{}
		listquery.EncodeStatus(q, p.state.Status)
		v.StatusParam = q.Get(listquery.ParamStatus)
	}
	if p.fetchErr != nil {
		v.Error = "Try again, or change the filters."
	}
	return v
}

func (h *ListHandler) nav(current string) []views.NavLink {
	configs := h.registry.Configs()
	links := make([]views.NavLink, 0, len(configs))
	for _, c := range configs {
		links = append(links, views.NavLink{Title: c.Title, Href: c.Path, Current: c.Name == current})
	}
	return links
}

// blockingError replaces the whole page; nothing of the list is rendered
func (h *ListHandler) blockingError(w http.ResponseWriter, r *http.Request, status int, title string, err error) {
	if wantsJSON(r) {
		middleware.ErrorResponse(w, status, err.Error())
		return
	}
	if rerr := h.views.RenderError(w, status, views.ErrorPage{Title: title, Message: err.Error(), Lists: h.nav("")}); rerr != nil {
		slog.Error("failed to render error page", "error", rerr)
		http.Error(w, title, status)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
