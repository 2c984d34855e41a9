package catalog

import (
	"fmt"
	"strings"
)

// CategoryRecord is the raw shape of one category in a catalog document.
type CategoryRecord struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Products    []ProductRecord `json:"products" yaml:"products"`
}

// Build turns category records into categories. Duplicate names are detected
// across the whole call, not per category: a repeated product is merged into
// the item built first and stays in that item's category.
// ProductCount therefore grows by the number of distinct products, not by the number of records.
// Every record is checked before anything is built, so a failed Build leaves
// no categories, merges or counter changes behind.
func Build(records []CategoryRecord, opts ...Option) ([]*Category, error) {
	if err := checkRecords(records); err != nil {
		return nil, err
	}

	categories := make([]*Category, 0, len(records))
	var known []Item

	for _, rec := range records {
		items := make([]Item, 0, len(rec.Products))
		for _, pr := range rec.Products {
			item, merged, err := Merge(pr, known, opts...)
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", rec.Name, err)
			}
			if merged {
				continue
			}
			items = append(items, item)
			known = append(known, item)
		}

		category, err := NewCategory(rec.Name, rec.Description, items)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// checkRecords replays the merge rules over names and kinds only.
func checkRecords(records []CategoryRecord) error {
	type planned struct {
		name string
		kind Kind
	}
	var seen []planned

	for _, rec := range records {
		for _, pr := range rec.Products {
			kind, err := ParseKind(pr.Kind)
			if err != nil {
				return fmt.Errorf("category %q: product %q: %w", rec.Name, pr.Name, err)
			}
			var into Kind
			for _, p := range seen {
				if strings.EqualFold(p.name, pr.Name) {
					into = p.kind
					break
				}
			}
			if err := pr.check(kind, into); err != nil {
				return fmt.Errorf("category %q: %w", rec.Name, err)
			}
			if into == "" {
				seen = append(seen, planned{name: pr.Name, kind: kind})
			}
		}
	}
	return nil
}
