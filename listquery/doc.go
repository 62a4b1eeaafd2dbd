// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package listquery encodes and decodes list page state in URL query strings.

# Status Filter

The status filter travels in the !status_matches parameter as a JSON array
holding at most one key:

	/admin/inventory?%21status_matches=%5B%22low_stock%22%5D

which decodes to ["low_stock"]. Elements may also be objects with a value
field ({"value":"low_stock"}). Only the first element is read.

Decoding never fails. A missing parameter, invalid JSON, an empty array or a
first element of any other shape all select "all". Selecting "all" removes
the parameter, so the canonical URL of the unfiltered list carries none.

# Page and Search

Page 1 is written as absence of the page parameter. Changing the status
filter always drops the page so the list starts from the top.

	q := u.Query()
	listquery.EncodeStatus(q, listquery.Select("backordered"))
	target := listquery.Encode(u.Path, q)
*/
package listquery
