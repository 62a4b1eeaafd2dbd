// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listquery

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names shared by every list page
const (
	ParamStatus = "!status_matches"
	ParamPage   = "page"
	ParamSearch = "search"
)

// MaxPage caps the page parameter so row offsets stay far from overflow
const MaxPage = 1_000_000

// AllKey is the tab key meaning "no status filter". It is never written to a URL.
const AllKey = "all"

// Selection is the currently selected status filter.
// The zero value selects all statuses.
type Selection struct {
	Value string
}

// All returns the "no filter" selection
func All() Selection {
	return Selection{}
}

// Select returns a selection for key, folding "all" into the sentinel
func Select(key string) Selection {
	if key == AllKey {
		return Selection{}
	}
	return Selection{Value: key}
}

func (s Selection) IsAll() bool {
	return s.Value == "" || s.Value == AllKey
}

// Key returns the tab key for the selection ("all" for the sentinel)
func (s Selection) Key() string {
	if s.IsAll() {
		return AllKey
	}
	return s.Value
}

// DecodeStatus reads the status filter from parsed query values.
// Malformed values never produce an error; they select all.
func DecodeStatus(q url.Values) Selection {
	if q == nil {
		return All()
	}
	values, ok := q[ParamStatus]
	if !ok || len(values) == 0 {
		return All()
	}
	return decodeJSON(values[0])
}

// DecodeStatusRaw reads the status filter from a raw (still percent-encoded)
// query string. A parameter that fails to unescape selects all.
func DecodeStatusRaw(rawQuery string) Selection {
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key != ParamStatus {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return All()
		}
		return decodeJSON(value)
	}
	return All()
}

func decodeJSON(value string) Selection {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(value), &elems); err != nil || len(elems) == 0 {
		return All()
	}

	// Single select: first element wins
	var key string
	if err := json.Unmarshal(elems[0], &key); err == nil {
		return Select(key)
	}

	var obj struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(elems[0], &obj); err == nil && obj.Value != nil {
		return Select(*obj.Value)
	}
	return All()
}

// EncodeStatus writes sel into q and resets pagination.
func EncodeStatus(q url.Values, sel Selection) {
	q.Del(ParamPage)
	if sel.IsAll() {
		q.Del(ParamStatus)
		return
	}
	// Marshalling a one-element string slice cannot fail
	encoded, _ := json.Marshal([]string{sel.Value})
	q.Set(ParamStatus, string(encoded))
}

// Page returns the 1-based page number, defaulting to 1.
// Values above MaxPage are clamped to it.
func Page(q url.Values) int {
	raw := strings.TrimSpace(q.Get(ParamPage))
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return MaxPage
	}
	if err != nil || n < 1 {
		return 1
	}
	return min(n, MaxPage)
}

// SetPage writes the page parameter. Page 1 is written as absence.
func SetPage(q url.Values, page int) {
	if page <= 1 {
		q.Del(ParamPage)
		return
	}
	q.Set(ParamPage, strconv.Itoa(page))
}

// Search returns the free-text search term
func Search(q url.Values) string {
	return strings.TrimSpace(q.Get(ParamSearch))
}

// Clone returns a deep copy of q so callers can mutate it freely
func Clone(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Encode joins path and query into a navigation target. An empty query
// yields the bare path.
func Encode(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	encoded := q.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
