package catalog

import (
	"fmt"
	"strings"
)

// ProductRecord is the raw shape of one product in a catalog document.
// Variant attributes are read only for the matching kind.
type ProductRecord struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Kind        string  `json:"kind,omitempty" yaml:"kind,omitempty"`

	Efficiency float64 `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	Model      string  `json:"model,omitempty" yaml:"model,omitempty"`
	Memory     int     `json:"memory,omitempty" yaml:"memory,omitempty"`

	Country           string `json:"country,omitempty" yaml:"country,omitempty"`
	GerminationPeriod string `json:"germination_period,omitempty" yaml:"germination_period,omitempty"`

	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Merge folds rec into a known item with the same name, ignoring case, or builds a new one.
// On a match the quantities are summed and the higher price is kept; the
// existing item is returned with merged set. A record that names a kind must
// agree with the item it merges into. A rejected record changes nothing.
func Merge(rec ProductRecord, known []Item, opts ...Option) (item Item, merged bool, err error) {
	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return nil, false, fmt.Errorf("product %q: %w", rec.Name, err)
	}

	existing := findByName(known, rec.Name)
	if existing == nil {
		if err := rec.check(kind, ""); err != nil {
			return nil, false, err
		}
		item, err = rec.build(kind, opts)
		if err != nil {
			return nil, false, err
		}
		return item, false, nil
	}

	if err := rec.check(kind, existing.Kind()); err != nil {
		return nil, false, err
	}
	p := existing.base()
	p.quantity += rec.Quantity
	if rec.Price > p.price {
		p.SetPrice(rec.Price, nil)
	}
	pkgLog.Debug("duplicate product merged",
		"product", p.name,
		"quantity", p.quantity,
		"price", p.price,
	)
	return existing, true, nil
}

func findByName(known []Item, name string) Item {
	for _, item := range known {
		if !isNil(item) && strings.EqualFold(item.Name(), name) {
			return item
		}
	}
	return nil
}

// check applies every rule Merge enforces before it touches anything.
// into is the kind of the matching item, or empty when rec builds a new one.
func (rec ProductRecord) check(kind, into Kind) error {
	if !finite(rec.Price) {
		return fmt.Errorf("product %q with price %v: %w", rec.Name, rec.Price, ErrInvalidPrice)
	}
	if into == "" {
		if rec.Quantity <= 0 {
			return fmt.Errorf("product %q with quantity %d: %w", rec.Name, rec.Quantity, ErrInvalidQuantity)
		}
		return nil
	}
	if rec.Kind != "" && into != kind {
		return fmt.Errorf("merge %s %q into %s: %w", kind, rec.Name, into, ErrTypeMismatch)
	}
	if rec.Quantity < 0 {
		return fmt.Errorf("merge %q with quantity %d: %w", rec.Name, rec.Quantity, ErrInvalidQuantity)
	}
	return nil
}

func (rec ProductRecord) build(kind Kind, opts []Option) (Item, error) {
	switch kind {
	case KindSmartphone:
		return NewSmartphone(rec.Name, rec.Description, rec.Price, rec.Quantity,
			rec.Efficiency, rec.Model, rec.Memory, rec.Color, opts...)
	case KindLawnGrass:
		return NewLawnGrass(rec.Name, rec.Description, rec.Price, rec.Quantity,
			rec.Country, rec.GerminationPeriod, rec.Color, opts...)
	default:
		return NewProduct(rec.Name, rec.Description, rec.Price, rec.Quantity, opts...)
	}
}
