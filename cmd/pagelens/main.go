// Pagelens - Umami Pageview Aggregation Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pagelens

// Command pagelens queries aggregated pageview data for the configured
// website.
//
// Usage:
//
//	pagelens -slugs            # table of slug -> views
//	pagelens -url /post/a      # views for one path
//	pagelens -slug a           # views for one slug
//	pagelens -categories       # views per category landing page
//	pagelens -stats            # site-wide totals
//	pagelens -active           # current active visitors
//
// Connection parameters come from UMAMI_API_URL, UMAMI_WEBSITE_ID, and
// UMAMI_API_KEY, or a pagelens.yaml config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/tomtom215/pagelens/internal/analytics"
	"github.com/tomtom215/pagelens/internal/config"
	"github.com/tomtom215/pagelens/internal/logging"
	umami "github.com/tomtom215/pagelens/internal/models/umami"
	"github.com/tomtom215/pagelens/internal/taxonomy"
)

func main() {
	var (
		slugsFlag  = flag.Bool("slugs", false, "print a table of slug -> views")
		urlFlag    = flag.String("url", "", "print the view count for one path")
		slugFlag   = flag.String("slug", "", "print the view count for one content slug")
		catsFlag   = flag.Bool("categories", false, "print views per category landing page")
		statsFlag  = flag.Bool("stats", false, "print site-wide totals")
		activeFlag = flag.Bool("active", false, "print current active visitor count")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pagelens:", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	var source analytics.Source = analytics.NewClient(&cfg.Umami)
	if cfg.Umami.CircuitBreaker {
		source = analytics.NewCircuitBreakerSource(&cfg.Umami)
	}
	svc := analytics.NewService(&cfg.Umami, source)

	ctx := context.Background()

	switch {
	case *slugsFlag:
		printSlugTable(svc.SlugViewMap(ctx))
	case *urlFlag != "":
		fmt.Println(svc.PageviewsForURL(ctx, *urlFlag))
	case *slugFlag != "":
		fmt.Println(svc.PageviewsForSlug(ctx, *slugFlag))
	case *catsFlag:
		printCategoryTable(ctx, svc)
	case *statsFlag:
		printStats(svc.WebsiteStats(ctx, umami.TimeRange{}))
	case *activeFlag:
		fmt.Println(svc.ActiveVisitors(ctx))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printSlugTable(views map[string]int) {
	slugs := make([]string, 0, len(views))
	for slug := range views {
		slugs = append(slugs, slug)
	}
	sort.Slice(slugs, func(i, j int) bool {
		if views[slugs[i]] != views[slugs[j]] {
			return views[slugs[i]] > views[slugs[j]]
		}
		return slugs[i] < slugs[j]
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Slug", "Views")
	for _, slug := range slugs {
		table.Append(slug, strconv.Itoa(views[slug]))
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(os.Stderr, "pagelens:", err)
		os.Exit(1)
	}
}

func printCategoryTable(ctx context.Context, svc *analytics.Service) {
	byPath := make(map[string]int)
	for _, m := range svc.FetchURLMetrics(ctx, umami.TimeRange{}) {
		byPath[m.Path] = m.Views
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Category", "Views")
	for _, cat := range taxonomy.Categories {
		table.Append(cat.Label, strconv.Itoa(byPath["/category/"+cat.Slug]))
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(os.Stderr, "pagelens:", err)
		os.Exit(1)
	}
}

func printStats(stats umami.WebsiteStats) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Value", "Previous")
	rows := []struct {
		name string
		stat umami.StatValue
	}{
		{"pageviews", stats.Pageviews},
		{"visitors", stats.Visitors},
		{"visits", stats.Visits},
		{"bounces", stats.Bounces},
		{"total time", stats.TotalTime},
	}
	for _, r := range rows {
		table.Append(r.name, strconv.Itoa(r.stat.Value), strconv.Itoa(r.stat.Prev))
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(os.Stderr, "pagelens:", err)
		os.Exit(1)
	}
}
