package web

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/frenchcert/frenchcert/pkg/lookup"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

// PagerWindow is the number of page links rendered around the current page.
const PagerWindow = 7

var (
	policyOnce sync.Once
	ugc        *bluemonday.Policy
	strict     *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		ugc = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()
	})
	return ugc, strict
}

// Funcs returns the template functions available to every TemplateSet.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"safeHTML":  SafeHTML,
		"excerpt":   Excerpt,
		"pages":     func(current, total int) []int { return pagination.Pages(current, total, PagerWindow) },
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"withParam": WithParam,
		"label":     lookup.Label,
		"contains":  slices.Contains[[]string],
		"join":      strings.Join,
		"dict":      Dict,
	}
}

// Dict builds a map from alternating keys and values so a template can pass
// several values to a partial.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

// SafeHTML sanitizes rich-text content with a user-generated-content policy
// and marks the result safe for templates.
func SafeHTML(s string) template.HTML {
	p, _ := policies()
	return template.HTML(p.Sanitize(s))
}

// Excerpt strips markup from s and truncates it to n runes.
func Excerpt(s string, n int) string {
	_, p := policies()
	text := strings.Join(strings.Fields(html.UnescapeString(p.Sanitize(s))), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// WithParam returns path with params, where key is replaced by value. An
// empty value removes key. Changing anything but "page" drops the page
// parameter so the result starts on the first page.
func WithParam(path string, params url.Values, key, value string) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = slices.Clone(v)
	}
	if key != "page" {
		q.Del("page")
	}
	if value == "" || (key == "page" && value == "1") {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
