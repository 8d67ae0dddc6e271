package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

//go:embed default.json
var defaultDocument []byte

// ErrUnknownCategory is returned when the catalog has no selectors for a category.
var ErrUnknownCategory = errors.New("unknown category")

// ErrUnknownSelectorType is returned when a known category has no selectors for the requested type.
var ErrUnknownSelectorType = errors.New("unknown selector type")

// SelectorOptions maps a selector id (protocol, asset, pair) to its allowed values.
type SelectorOptions map[string][]string

// Catalog is the static, read-only description of what can be selected and how it is displayed.
//
// It is loaded once at startup and shared by every request; nothing mutates it afterwards,
// so concurrent reads need no locking.
type Catalog struct {
	DefaultColor string                                `json:"defaultColor"`
	Datasets     map[string][]string                   `json:"datasets"`
	Selectors    map[string]map[string]SelectorOptions `json:"selectors"`
	Names        map[string]string                     `json:"names"`
	Colors       map[string]string                     `json:"colors"`
}

// Load reads the catalog from path, or the embedded default document when path is empty.
func Load(path string) (*Catalog, error) {
	raw := defaultDocument
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodes a catalog document and checks it has at least one category.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Selectors) == 0 {
		return nil, errors.New("catalog has no selectors")
	}
	return &c, nil
}

// SelectorOptions returns the selector id -> values table for a category and selector type.
func (c *Catalog) SelectorOptions(category, selectorType string) (SelectorOptions, error) {
	byType, ok := c.Selectors[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	opts, ok := byType[selectorType]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no %q selectors", ErrUnknownSelectorType, category, selectorType)
	}
	return opts, nil
}

// HasCategory reports whether the catalog knows the category.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.Selectors[category]
	return ok
}

// Categories returns all category names, sorted.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.Selectors))
	for k := range c.Selectors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DatasetsFor lists the datasets served for a category.
func (c *Catalog) DatasetsFor(category string) []string {
	return c.Datasets[category]
}

// Name returns the display text for a value, or the value itself when unnamed.
func (c *Catalog) Name(value string) string {
	if n, ok := c.Names[value]; ok {
		return n
	}
	return value
}

// Color returns the series color for a value, falling back to DefaultColor.
func (c *Catalog) Color(value string) string {
	if col, ok := c.Colors[value]; ok {
		return col
	}
	return c.DefaultColor
}
