// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

	conn, err := db.Open(db.TypeSQLite, "shopdesk.db")
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Open does not import drivers. main registers lib/pq ("postgres") and
modernc.org/sqlite ("sqlite").

# Tables

  - inventory_item: sku (unique), name, quantity, status
  - api_key: name, display prefix, token hash, status, revoked_at
  - oauth_app: name, client_id (unique), secret hash, redirect_uri, status

Each status column has a CHECK constraint and an index; list pages filter
and group by it.
*/
package db
