package models

import (
	"encoding/json"
	"fmt"
)

// Page is one decoded page of a paginated listing.
type Page struct {
	Limit uint32
	Page  uint32
	Pages uint32
	Total uint32
	Items Entries
}

type wirePage struct {
	Limit    *uint32 `json:"limit"`
	Page     *uint32 `json:"page"`
	Pages    *uint32 `json:"pages"`
	Total    *uint32 `json:"total"`
	Embedded *struct {
		Items *[]json.RawMessage `json:"items"`
	} `json:"_embedded"`
}

// DecodePage decodes a page envelope and every entry embedded in it. The
// first invalid item fails the whole page.
func DecodePage(data []byte) (*Page, error) {
	var w wirePage
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, jsonError(err, "page")
	}

	for _, f := range []struct {
		name string
		v    *uint32
	}{
		{"limit", w.Limit},
		{"page", w.Page},
		{"pages", w.Pages},
		{"total", w.Total},
	} {
		if f.v == nil {
			return nil, missingOrInvalid(f.name, nil)
		}
	}
	if w.Embedded == nil || w.Embedded.Items == nil {
		return nil, missingOrInvalid("_embedded.items", nil)
	}

	raw := *w.Embedded.Items
	items := make(Entries, 0, len(raw))
	for i, item := range raw {
		e, err := DecodeEntry(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, *e)
	}

	return &Page{
		Limit: *w.Limit,
		Page:  *w.Page,
		Pages: *w.Pages,
		Total: *w.Total,
		Items: items,
	}, nil
}

// DecodeTags decodes the tag list returned by the tags endpoint. Duplicates
// by id are dropped.
func DecodeTags(data []byte) (Tags, error) {
	var tags *Tags
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, jsonError(err, "tags")
	}
	if tags == nil {
		return nil, missingOrInvalid("tags", nil)
	}
	return uniqueTags(*tags), nil
}
