// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store runs the list, count and status queries behind list pages.
// Queries use $N placeholders, accepted by both lib/pq and modernc.org/sqlite.
package store
