// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/shopdesk/indicator"
	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/tabs"
)

//go:embed templates/*.html
var templateFS embed.FS

// NavLink is one entry of the top navigation
type NavLink struct {
	Title   string
	Href    string
	Current bool
}

// ListPage is everything the list template needs
type ListPage struct {
	Title          string
	Path           string
	Lists          []NavLink
	Search         string
	StatusParam    string
	Tabs           []tabs.Tab
	Indicator      indicator.Indicators
	State          listpage.RenderState
	Rows           []models.Row
	Count          int
	Error          string
	EmptyTitle     string
	EmptyHint      string
	NoResultsTitle string
	ResetURL       string
	Pagination     listpage.Pagination
	Colors         map[string]string
	Labels         map[string]string
}

// ErrorPage is the blocking error panel shown instead of a list
type ErrorPage struct {
	Title   string
	Message string
	Lists   []NavLink
}

// Renderer renders the dashboard's HTML pages
type Renderer struct {
	list    *template.Template
	errPage *template.Template
}

var funcs = template.FuncMap{
	"count": func(n int) string { return humanize.Comma(int64(n)) },
	"ago":   func(t time.Time) string { return humanize.Time(t) },
	"px": func(v float64) template.CSS {
		return template.CSS(strconv.FormatFloat(v, 'f', -1, 64) + "px")
	},
	"color": func(colors map[string]string, status string) string {
		if c, ok := colors[status]; ok && c != "" {
			return c
		}
		return "gray"
	},
	"label": func(labels map[string]string, status string) string {
		if l, ok := labels[status]; ok {
			return l
		}
		return status
	},
}

func New() (*Renderer, error) {
	list, err := template.New("list").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/list.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse list template: %w", err)
	}
	errPage, err := template.New("error").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse error template: %w", err)
	}
	return &Renderer{list: list, errPage: errPage}, nil
}

// RenderList writes a list page. Nothing is written if rendering fails.
func (r *Renderer) RenderList(w http.ResponseWriter, status int, page ListPage) error {
	return render(w, status, r.list, page)
}

// RenderError writes the blocking error panel
func (r *Renderer) RenderError(w http.ResponseWriter, status int, page ErrorPage) error {
	return render(w, status, r.errPage, page)
}

func render(w http.ResponseWriter, status int, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.Copy(w, &buf)
	return err
}
