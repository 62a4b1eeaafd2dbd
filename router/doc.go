// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the shopdesk admin dashboard.

	mux, err := router.NewRouter(db, cfg)

# Endpoints

	GET  /health
	GET  /metrics
	GET  /                          - Redirects to /admin/inventory
	GET  /admin/{list}              - inventory, api-keys, apps

	POST   /inventory
	POST   /inventory/{id}/status
	DELETE /inventory/{id}

	POST /api-keys
	POST /api-keys/{id}/revoke

	POST /apps
	POST /apps/{id}/activate
	POST /apps/{id}/deactivate
*/
package router
