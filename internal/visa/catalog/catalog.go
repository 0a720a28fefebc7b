// Package catalog holds the static per-destination visa requirement tables.
// Catalogs are pure data built at startup; lookups never fail and never mutate.
package catalog

import "fmt"

// RequirementItem is one document or condition an applicant has to satisfy.
type RequirementItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Mandatory   bool     `json:"mandatory"`
	Details     []string `json:"details,omitempty"`
}

// CategoryRequirements is one visa product definition for a destination+category.
type CategoryRequirements struct {
	Name                 string            `json:"name"`
	ProcessingTime       string            `json:"processingTime"`
	StayDuration         string            `json:"stayDuration"`
	Fee                  string            `json:"fee"`
	CommonRequirements   []RequirementItem `json:"commonRequirements"`
	SpecificRequirements []RequirementItem `json:"specificRequirements"`
}

// Category is the authoring shape for one category of a destination.
// CommonRequirements are attached by the catalog constructor so that every
// category of a destination shares the same slice and edits propagate uniformly.
type Category struct {
	Name                 string
	ProcessingTime       string
	StayDuration         string
	Fee                  string
	SpecificRequirements []RequirementItem
}

// DestinationCatalog maps category names to requirements for one destination.
// Category order is declaration order; it drives the order of selection tabs.
type DestinationCatalog struct {
	destination     string
	defaultCategory string
	order           []string
	entries         map[string]*CategoryRequirements
}

// New builds a destination catalog. The common requirements slice is shared by
// reference across every category.
func New(destination, defaultCategory string, common []RequirementItem, categories []Category) (*DestinationCatalog, error) {
	c := &DestinationCatalog{
		destination:     destination,
		defaultCategory: defaultCategory,
		entries:         make(map[string]*CategoryRequirements, len(categories)),
	}

	for _, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("catalog %q: category with empty name", destination)
		}
		if _, dup := c.entries[cat.Name]; dup {
			return nil, fmt.Errorf("catalog %q: duplicate category %q", destination, cat.Name)
		}
		c.order = append(c.order, cat.Name)
		c.entries[cat.Name] = &CategoryRequirements{
			Name:                 cat.Name,
			ProcessingTime:       cat.ProcessingTime,
			StayDuration:         cat.StayDuration,
			Fee:                  cat.Fee,
			CommonRequirements:   common,
			SpecificRequirements: cat.SpecificRequirements,
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is New for the built-in tables; bad built-in data must halt startup.
func MustNew(destination, defaultCategory string, common []RequirementItem, categories []Category) *DestinationCatalog {
	c, err := New(destination, defaultCategory, common, categories)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks catalog integrity: the default category must resolve,
// otherwise the never-fail lookup contract cannot be honored.
func (c *DestinationCatalog) Validate() error {
	if len(c.order) == 0 {
		return fmt.Errorf("catalog %q: no categories", c.destination)
	}
	if _, ok := c.entries[c.defaultCategory]; !ok {
		return fmt.Errorf("catalog %q: default category %q not defined", c.destination, c.defaultCategory)
	}
	return nil
}

// Destination returns the destination this catalog was authored for.
func (c *DestinationCatalog) Destination() string {
	return c.destination
}

// DefaultCategory returns the category unknown names resolve to.
func (c *DestinationCatalog) DefaultCategory() string {
	return c.defaultCategory
}

// RequirementsByCategory resolves a category name to its requirements.
// Unknown or empty names fall back to the default category: the category name
// often comes from user-controlled navigation state, and the caller must
// always have something renderable.
func (c *DestinationCatalog) RequirementsByCategory(name string) *CategoryRequirements {
	if entry, ok := c.entries[name]; ok {
		return entry
	}
	return c.entries[c.defaultCategory]
}

// Categories returns category names in declaration order.
func (c *DestinationCatalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
