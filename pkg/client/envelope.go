package client

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// Listing replies come in several shapes:
//
//	{"success": true, "data": {"docs": [...], "page": 2, "pages": 5}}
//	{"success": true, "data": {"certifications": [...], "page": 2, "pages": 5}}
//	{"success": true, "data": [...]}
//
// decodePage normalizes all of them into a pagination.PageResult.
func decodePage[T any](body []byte) (pagination.PageResult[T], error) {
	if !gjson.ValidBytes(body) {
		return pagination.PageResult[T]{}, fmt.Errorf("invalid listing body")
	}

	data := gjson.GetBytes(body, "data")
	items, page, pages := locateItems(data)
	if !items.Exists() {
		return pagination.NewPageResult[T](nil, 1, 1), nil
	}

	var out []T
	if err := json.Unmarshal([]byte(items.Raw), &out); err != nil {
		return pagination.PageResult[T]{}, fmt.Errorf("decode items: %w", err)
	}

	return pagination.NewPageResult(out, page, pages), nil
}

func locateItems(data gjson.Result) (items gjson.Result, page, pages int) {
	if data.IsArray() {
		return data, 1, 1
	}
	if !data.IsObject() {
		return gjson.Result{}, 1, 1
	}

	page = int(firstInt(data, "page", "currentPage"))
	pages = int(firstInt(data, "pages", "totalPages"))

	if docs := data.Get("docs"); docs.IsArray() {
		return docs, page, pages
	}

	data.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			items = value
			return false
		}
		return true
	})
	return items, page, pages
}

func firstInt(doc gjson.Result, paths ...string) int64 {
	for _, p := range paths {
		if r := doc.Get(p); r.Exists() {
			return r.Int()
		}
	}
	return 0
}

// decodeEntity decodes the "data" member of a single-entity reply.
func decodeEntity[T any](body []byte) (*T, error) {
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal([]byte(data.Raw), &out); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return &out, nil
}

// decodeOptions normalizes a lookup reply whose data is a list of strings
// or a list of entities into options. Blank and duplicate values are dropped.
func decodeOptions(body []byte) ([]lookup.Option, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid lookup body")
	}

	data := gjson.GetBytes(body, "data")
	items, _, _ := locateItems(data)

	options := make([]lookup.Option, 0)
	seen := make(map[string]bool)

	items.ForEach(func(_, item gjson.Result) bool {
		var opt lookup.Option
		switch {
		case item.Type == gjson.String:
			opt = lookup.Option{Value: item.String(), Label: item.String()}
		case item.IsObject():
			opt.Value = firstText(item, "_id", "id", "value", "name")
			opt.Label = firstText(item, "name", "title", "label")
			if opt.Label == "" {
				opt.Label = opt.Value
			}
		}
		if opt.Value != "" && !seen[opt.Value] {
			seen[opt.Value] = true
			options = append(options, opt)
		}
		return true
	})

	return options, nil
}

func firstText(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if r := doc.Get(p); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
