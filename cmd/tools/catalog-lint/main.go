// cmd/tools/catalog-lint/main.go
//
// catalog-lint sweeps the compiled-in requirement catalogs, the pricing table
// and the activity registry, and exits non-zero on the first inconsistency.
// It runs in CI so a bad data edit never reaches a running worker.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"visa-workers/internal/common/validation"
	"visa-workers/internal/visa/catalog"
	"visa-workers/internal/visa/pricing"
	"visa-workers/pkg/registry"
)

func main() {
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	verbose := flag.Bool("v", false, "Print every checked entry")
	flag.Parse()

	failures := 0
	failures += lintCatalogs(*verbose)
	failures += lintPricing(*verbose)
	failures += lintRegistry(*registryPath, *verbose)

	if failures > 0 {
		fmt.Printf("\ncatalog-lint: %d problem(s) found\n", failures)
		os.Exit(1)
	}
	fmt.Println("catalog-lint: all checks passed")
}

func lintCatalogs(verbose bool) int {
	failures := 0
	catalogs := catalog.Catalogs()

	destinations := make([]string, 0, len(catalogs))
	for dest := range catalogs {
		destinations = append(destinations, dest)
	}
	sort.Strings(destinations)

	for _, dest := range destinations {
		c := catalogs[dest]
		if err := c.Validate(); err != nil {
			fmt.Printf("FAIL catalog %s: %v\n", dest, err)
			failures++
			continue
		}

		// Every listed category must resolve to itself, and an unknown name
		// must fall back to the default rather than come back empty.
		for _, name := range c.Categories() {
			reqs := c.RequirementsByCategory(name)
			if reqs.Name != name {
				fmt.Printf("FAIL catalog %s: category %q resolved to %q\n", dest, name, reqs.Name)
				failures++
			}
			if len(reqs.CommonRequirements) == 0 {
				fmt.Printf("FAIL catalog %s: category %q has no common requirements\n", dest, name)
				failures++
			}
			if verbose {
				fmt.Printf("ok   catalog %s/%s (%d common, %d specific)\n",
					dest, name, len(reqs.CommonRequirements), len(reqs.SpecificRequirements))
			}
		}

		fallback := c.RequirementsByCategory("no-such-category")
		if fallback.Name != c.DefaultCategory() {
			fmt.Printf("FAIL catalog %s: unknown category fell back to %q, want %q\n",
				dest, fallback.Name, c.DefaultCategory())
			failures++
		}
	}

	return failures
}

func lintPricing(verbose bool) int {
	table, err := pricing.DefaultTable()
	if err != nil {
		fmt.Printf("FAIL pricing: %v\n", err)
		return 1
	}

	failures := 0
	for _, entry := range table.Entries() {
		breakdown := pricing.Compose(&entry)

		sum := breakdown.ConsularFee.Add(breakdown.CenterFee).Add(breakdown.ServiceFee)
		if !sum.Equal(breakdown.Total) {
			fmt.Printf("FAIL pricing %s/%s: components sum to %s, total is %s\n",
				entry.VisaType, entry.Tier, sum.String(), breakdown.Total.String())
			failures++
		}
		if breakdown.Currency == "" {
			fmt.Printf("FAIL pricing %s/%s: missing currency\n", entry.VisaType, entry.Tier)
			failures++
		}
		if verbose {
			fmt.Printf("ok   pricing %s/%s = %s %s\n",
				entry.VisaType, entry.Tier, breakdown.Total.String(), breakdown.Currency)
		}
	}

	// The tier fallback contract: every priced visa type must carry a standard
	// row, or a tier downgrade would dead-end.
	seen := map[string]bool{}
	for _, entry := range table.Entries() {
		if entry.Tier == pricing.TierStandard {
			seen[string(entry.VisaType)] = true
		}
	}
	for _, entry := range table.Entries() {
		if !seen[string(entry.VisaType)] {
			fmt.Printf("FAIL pricing %s: no standard tier row\n", entry.VisaType)
			failures++
			seen[string(entry.VisaType)] = true
		}
	}

	return failures
}

func lintRegistry(path string, verbose bool) int {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		fmt.Printf("FAIL registry %s: %v\n", path, err)
		return 1
	}

	failures := 0
	for _, activity := range reg.Activities {
		if err := validation.ValidateActivityNaming(activity.ID); err != nil {
			fmt.Printf("FAIL registry %s: %v\n", activity.ID, err)
			failures++
		}
		if verbose {
			fmt.Printf("ok   registry %s -> %s\n", activity.ID, activity.TaskType)
		}
	}

	return failures
}
