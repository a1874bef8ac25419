// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

// Package taxonomy bundles the static content-category list for the
// tracked site. It has no behavioral coupling to the analytics core;
// it ships here because the site and its tooling share one source of
// truth for category slugs.
package taxonomy

// Category is one content category.
type Category struct {
	Slug  string
	Label string
}

// Categories lists the site's content categories in display order.
var Categories = []Category{
	{Slug: "engineering", Label: "Engineering"},
	{Slug: "golang", Label: "Go"},
	{Slug: "databases", Label: "Databases"},
	{Slug: "observability", Label: "Observability"},
	{Slug: "self-hosting", Label: "Self-Hosting"},
	{Slug: "meta", Label: "Meta"},
}

// BySlug looks up a category by its slug.
func BySlug(slug string) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// Slugs returns the category slugs in display order.
func Slugs() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = c.Slug
	}
	return out
}
