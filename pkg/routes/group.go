// Package routes registers groups of HTTP routes on a ServeMux.
package routes

import (
	"net/http"
	"strings"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Register adds every route of groups to mux under prefix. Child groups
// extend their parent's prefix.
func Register(mux *http.ServeMux, prefix string, groups ...Group) {
	for _, group := range groups {
		register(mux, strings.TrimSuffix(prefix, "/"), group)
	}
}

// Patterns lists the "METHOD /path" patterns groups would register.
func Patterns(prefix string, groups ...Group) []string {
	var out []string
	var walk func(string, Group)
	walk = func(parent string, g Group) {
		full := parent + g.Prefix
		for _, r := range g.Routes {
			out = append(out, pattern(full, r))
		}
		for _, child := range g.Children {
			walk(full, child)
		}
	}
	for _, g := range groups {
		walk(strings.TrimSuffix(prefix, "/"), g)
	}
	return out
}

func register(mux *http.ServeMux, parent string, group Group) {
	full := parent + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(pattern(full, route), route.Handler)
	}
	for _, child := range group.Children {
		register(mux, full, child)
	}
}

func pattern(prefix string, r Route) string {
	path := prefix + r.Pattern
	if path == "" {
		path = "/"
	}
	return r.Method + " " + path
}
