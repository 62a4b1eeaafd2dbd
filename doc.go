// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the shopdesk admin dashboard.

shopdesk serves status-filtered list pages for a store's inventory, API keys
and OAuth apps. Filters, search and pagination live entirely in the URL so
every view can be bookmarked, shared and restored with the back button.

# Starting the Server

	TOKEN_SALT=dev DATABASE_URL=shopdesk.db go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -token-salt dev

A .env file (or the file named by ENV_FILE) is loaded first; variables
already set in the environment win.

# Configuration

  - DATABASE_URL (-d): connection string or SQLite path (required)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_SALT (-token-salt): secret for API key and client secret hashes (required)
  - PORT (-p): server port (default: 3318)
  - PAGE_SIZE (-page-size): rows per list page (default: 20)

# Architecture

  - listquery: the !status_matches URL codec
  - tabs: tab strip state derived from the URL
  - indicator: hover and active underline geometry
  - listpage: list configuration, render states and pagination
  - store: search, status filter and count queries
  - views: embedded HTML templates
  - handlers, router, middleware: HTTP surface
  - metrics: Prometheus collectors
  - db, auth, cliparse, models: schema, secrets, config and wire types
*/
package main
